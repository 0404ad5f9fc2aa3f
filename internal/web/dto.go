package web

import (
	"errors"
	"regexp"
	"time"

	"github.com/goserg/multielo/internal/domain"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrNotEnoughPlayers = errors.New("в матче должны участвовать минимум два игрока")
	ErrDuplicatePlayer  = errors.New("игрок не может участвовать в матче дважды")
	ErrBadPlace         = errors.New("место должно быть положительным числом")
)

type createMatch struct {
	Results []createMatchResult `json:"results"`
}

type createMatchResult struct {
	PlayerID uuid.UUID `json:"playerId"`
	Place    int       `json:"place"`
}

func (c createMatch) Validate() error {
	if len(c.Results) < 2 {
		return ErrNotEnoughPlayers
	}
	seen := mapset.NewSet[uuid.UUID]()
	for _, result := range c.Results {
		if result.PlayerID == uuid.Nil || !seen.Add(result.PlayerID) {
			return ErrDuplicatePlayer
		}
		if result.Place <= 0 {
			return ErrBadPlace
		}
	}
	return nil
}

func (c createMatch) convertToDomainMatch() domain.Match {
	match := domain.Match{
		Date:    time.Now(),
		Results: make([]domain.Result, 0, len(c.Results)),
	}
	for _, result := range c.Results {
		match.Results = append(match.Results, domain.Result{
			Player: domain.Player{ID: result.PlayerID},
			Rank:   result.Place,
		})
	}
	return match
}

type signupRequest struct {
	name     string
	password string
}

func parseSignUpRequest(ctx *fiber.Ctx) (signupRequest, error) {
	var err error
	name := ctx.FormValue("username", "")
	err = errors.Join(err, validateUserName(name))
	password := ctx.FormValue("password", "")
	err = errors.Join(err, validatePassword(password))
	passwordRepeat := ctx.FormValue("password-repeat", "")
	if passwordRepeat != password {
		err = errors.Join(err, errors.New("пароль не совпадает с подтверждением"))
	}
	if err != nil {
		return signupRequest{}, err
	}
	return signupRequest{
		name:     name,
		password: password,
	}, nil
}

type signInRequest struct {
	name     string
	password string
}

func parseSignInRequest(ctx *fiber.Ctx) (signInRequest, error) {
	var err error
	name := ctx.FormValue("username", "")
	err = errors.Join(err, validateUserName(name))
	password := ctx.FormValue("password", "")
	err = errors.Join(err, validatePassword(password))
	if err != nil {
		return signInRequest{}, err
	}
	return signInRequest{
		name:     name,
		password: password,
	}, nil
}

var userNameRegexp = regexp.MustCompile(`^[A-Za-z]\w+$`)

func validateUserName(name string) error {
	var err error
	if name == "" {
		err = errors.Join(err, errors.New("имя пользователя не должно быть пустое"))
	}
	if !userNameRegexp.MatchString(name) {
		err = errors.Join(err, errors.New("имя пользователя должно начинаться с латинской буквы и содержать только латинские буквы, цифры и знаки подчеркивания"))
	}
	return err
}

func validatePassword(password string) error {
	if password == "" {
		return errors.New("пароль пользователя не должен быть пустым")
	}
	return nil
}
