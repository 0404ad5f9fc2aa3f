package tgbot

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goserg/multielo/bot/model"
	"github.com/goserg/multielo/internal/domain"
	"github.com/goserg/multielo/internal/service"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type NewGameCommand struct {
	playerService *service.PlayerService
	notify        func(msg string)
}

func (c *NewGameCommand) Run(_ model.User, args string, resp *tgbotapi.MessageConfig) error {
	resp.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	match, err := c.processAddMatch(args)
	if err != nil {
		return err
	}
	c.sendMatchNotification(match)
	resp.Text = "матч создан"
	return nil
}

func (c *NewGameCommand) Help() string {
	return `Добавить игру. Игроки перечисляются по местам, от первого к последнему,
разделившие место пишутся через "=".
Пример: "/game вася петя=коля джон" - победил вася, петя и коля разделили второе место, джон последний.`
}

func (c *NewGameCommand) Permission() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}

func (c *NewGameCommand) Visibility() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleModerator)
}

func (c *NewGameCommand) processAddMatch(arguments string) (domain.Match, error) {
	groups := strings.Fields(arguments)
	if len(groups) < 2 {
		return domain.Match{}, errors.New(`неверный запрос. Пример: "/game вася петя" - победил вася, петя второй`)
	}
	match := domain.Match{
		Date: time.Now(),
	}
	rank := 1
	for _, group := range groups {
		names := strings.Split(group, "=")
		for _, name := range names {
			player, err := c.playerService.GetByName(name)
			if err != nil {
				return domain.Match{}, errors.New(name + " не найден")
			}
			match.Results = append(match.Results, domain.Result{
				Player: player,
				Rank:   rank,
			})
		}
		rank += len(names)
	}
	return c.playerService.CreateMatch(match)
}

func (c *NewGameCommand) sendMatchNotification(match domain.Match) {
	matches, err := c.playerService.GetMatches()
	if err != nil {
		return
	}
	for i := range matches {
		if matches[i].ID == match.ID {
			c.notify(formatMatchResult(matches[i]))
			return
		}
	}
}

func formatMatchResult(match domain.Match) string {
	var buf strings.Builder
	buf.WriteString("Результаты матча:\n")
	for _, result := range match.Results {
		if result.Rank == 1 {
			buf.WriteString("🏆")
		}
		buf.WriteString(strconv.Itoa(result.Rank))
		buf.WriteString(". ")
		buf.WriteString(result.Player.Name)
		buf.WriteString(": ")
		buf.WriteString(strconv.Itoa(int(math.Round(result.RatingAfter))))
		delta := result.RatingAfter - result.RatingBefore
		buf.WriteString("(")
		if delta >= 0 {
			buf.WriteString("+")
		}
		buf.WriteString(strconv.Itoa(int(math.Round(delta))))
		buf.WriteString(")\n")
	}
	return buf.String()
}
