package tgbot

import (
	"github.com/goserg/multielo/bot/botstorage"
	"github.com/goserg/multielo/bot/model"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type SubCommand struct {
	botStorage botstorage.BotStorage
	sub        func(int)
}

func (c *SubCommand) Run(user model.User, _ string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	err := c.botStorage.Subscribe(user)
	if err != nil {
		return err
	}
	c.sub(user.ID)
	resp.Text = "Подписка оформлена, чтобы отписаться от уведомлений: /unsub"
	return nil
}

func (c *SubCommand) Help() string {
	return `Подписаться на уведомления`
}

func (c *SubCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}

func (c *SubCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator, model.RoleUser)
}
