package tgbot

import (
	"errors"
	"strings"
	"unicode"

	"github.com/goserg/multielo/bot/model"
	"github.com/goserg/multielo/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type NewPlayerCommand struct {
	playerService *service.PlayerService
}

func (c *NewPlayerCommand) Run(_ model.User, args string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	if args == "" {
		return errors.New("имя должно быть не пустое")
	}
	if strings.EqualFold(args, draw) {
		return errors.New("имя " + draw + " запрещено")
	}
	for i, r := range args {
		if i == 0 {
			if !unicode.IsLetter(r) {
				return errors.New("имя должно начинаться с буквы")
			}
			continue
		}
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return errors.New("имя должно содержать только печатные символы")
		}
	}
	p, err := c.playerService.AddPlayer(args)
	if err != nil {
		return err
	}
	resp.Text = "Добавлен игрок " + p.Name + " (ID " + p.ID.String() + ")"
	return nil
}

func (c *NewPlayerCommand) Help() string {
	return `Добавить нового игрока. Использование: /new_player <имя игрока>`
}

func (c *NewPlayerCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}

func (c *NewPlayerCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}
