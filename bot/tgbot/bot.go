package tgbot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goserg/multielo/bot/botstorage"
	botmodel "github.com/goserg/multielo/bot/model"
	"github.com/goserg/multielo/internal/config"
	"github.com/goserg/multielo/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	bot *tgbotapi.BotAPI

	botStorage botstorage.BotStorage
	log        *logrus.Entry

	// cancel func to stop the bot
	cancel func()

	subs subscriptions

	commands *Commands
}

const draw = "ничья"

var ErrBadRequest = errors.New("неизвестная команда")

func New(ps *service.PlayerService, bs botstorage.BotStorage, cfg config.Config, log *logrus.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TgBot.TelegramAPIToken)
	if err != nil {
		return nil, fmt.Errorf("env TELEGRAM_APITOKEN: %w", err)
	}

	bot.Debug = cfg.Server.Debug
	_, err = bot.GetMe()
	if err != nil {
		return nil, err
	}
	subs := newSubs()
	users, err := bs.ListUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		for _, subType := range users[i].Subscriptions {
			subs.Add(subType, users[i].ID)
		}
	}

	b := Bot{
		bot:        bot,
		botStorage: bs,
		log:        log.WithField("module", "tg_bot"),
		subs:       subs,
	}

	b.commands = NewCommands(
		ps,
		bs,
		cfg.TgBot.AdminPassword,
		func(id int) {
			b.subs.Add(botmodel.NewMatch, id)
		},
		func(id int) {
			b.subs.Remove(botmodel.NewMatch, id)
		},
		func(msg string) {
			b.sendMatchNotification(botmodel.NewMatch, msg)
		},
	)

	return &b, nil
}

func (b *Bot) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			b.handleMessage(update)
		}
	}
}

func (b *Bot) handleMessage(update tgbotapi.Update) {
	if update.Message == nil { // ignore any non-Message updates
		return
	}
	tgUser := update.SentFrom()
	if tgUser == nil {
		return
	}
	log := b.log.WithFields(logrus.Fields{
		"user_id": tgUser.ID,
		"text":    update.Message.Text,
	})
	user, err := b.botStorage.GetUser(int(tgUser.ID))
	if err != nil {
		user, err = b.botStorage.NewUser(botmodel.User{
			ID:        int(tgUser.ID),
			FirstName: tgUser.FirstName,
			Username:  tgUser.UserName,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
		if err != nil {
			log.WithError(err).Error("unable to get user from db")
			return
		}
	}

	err = b.botStorage.Log(user, update.Message.Text)
	if err != nil {
		log.WithError(err).Error("can't log to db")
	}

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")

	err = b.commands.RunCommand(user, update.Message, &msg)
	if err != nil {
		msg.Text = err.Error()
	}
	if _, err := b.bot.Send(msg); err != nil {
		log.WithError(err).Error("send error")
		return
	}
}

func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
}

func (b *Bot) sendMatchNotification(event botmodel.EventType, text string) {
	for _, userID := range b.subs.GetUserIDs(event) {
		msg := tgbotapi.NewMessage(int64(userID), text)
		if _, err := b.bot.Send(msg); err != nil {
			b.log.WithError(err).Error("notification send error")
			return
		}
	}
}
