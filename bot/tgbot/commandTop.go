package tgbot

import (
	"math"
	"strconv"
	"strings"

	"github.com/goserg/multielo/bot/model"
	"github.com/goserg/multielo/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TopCommand struct {
	playerService *service.PlayerService
}

func (c *TopCommand) Run(_ model.User, _ string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	ratings, err := c.playerService.GetRatings()
	if err != nil {
		return err
	}
	var buffer strings.Builder
	for i := range ratings {
		if i > 9 {
			break
		}
		buffer.WriteString(strconv.Itoa(ratings[i].RatingRank))
		buffer.WriteString(". ")
		buffer.WriteString(ratings[i].Name)
		buffer.WriteString("(")
		buffer.WriteString(strconv.Itoa(int(math.Round(ratings[i].Rating))))
		buffer.WriteString(")\n")
	}
	resp.Text = buffer.String()
	return nil
}

func (c *TopCommand) Help() string {
	return `Список лучших в рейтинге`
}

func (c *TopCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}

func (c *TopCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}
