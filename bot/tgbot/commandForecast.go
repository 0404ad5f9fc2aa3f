package tgbot

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goserg/multielo/bot/model"
	"github.com/goserg/multielo/internal/domain"
	"github.com/goserg/multielo/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

type ForecastCommand struct {
	playerService *service.PlayerService
}

const forecastTrials = 10000

func (c *ForecastCommand) Run(_ model.User, args string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	names := strings.Fields(args)
	if len(names) < 2 {
		return errors.New(`нужно минимум два игрока. Пример: "/forecast вася петя"`)
	}
	players := make([]domain.Player, 0, len(names))
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		player, err := c.playerService.GetByName(name)
		if err != nil {
			return errors.New(name + " не найден")
		}
		players = append(players, player)
		ids = append(ids, player.ID)
	}
	forecast, err := c.playerService.Forecast(ids, forecastTrials)
	if err != nil {
		return err
	}
	var buf strings.Builder
	buf.WriteString("Шансы на победу:\n")
	for _, player := range players {
		buf.WriteString(player.Name)
		buf.WriteString(": ")
		buf.WriteString(strconv.FormatFloat(forecast[player.ID]*100, 'f', 1, 64))
		buf.WriteString("%\n")
	}
	resp.Text = buf.String()
	return nil
}

func (c *ForecastCommand) Help() string {
	return `Прогноз на матч. Использование: /forecast <имя игрока> <имя игрока> ...`
}

func (c *ForecastCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}

func (c *ForecastCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}
