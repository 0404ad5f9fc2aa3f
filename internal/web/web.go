package web

import (
	"errors"
	"io/fs"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	embedded "github.com/goserg/multielo"
	authservice "github.com/goserg/multielo/auth/service"
	"github.com/goserg/multielo/auth/users"
	"github.com/goserg/multielo/internal/config"
	"github.com/goserg/multielo/internal/service"
	"github.com/goserg/multielo/internal/web/webpath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/google/uuid"
)

type Server struct {
	auth          *authservice.Service
	playerService *service.PlayerService
	app           *fiber.App
	cfg           config.Server
}

func New(ps *service.PlayerService, cfg config.Server, authService *authservice.Service) (*Server, error) {
	server := Server{
		playerService: ps,
		auth:          authService,
		cfg:           cfg,
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)
	engine.AddFunc("FormatRating", formatRating)

	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(webpath.Api, func(c *fiber.Ctx) error {
		tokenCookie := c.Cookies("token")
		user, err := authService.Auth(c.Context(), tokenCookie, c.Method(), c.OriginalURL())
		if err != nil {
			switch {
			case errors.Is(err, authservice.ErrForbidden):
				c.Status(fiber.StatusForbidden)
			case errors.Is(err, authservice.ErrNotAuthorized):
				c.Status(fiber.StatusUnauthorized)
			default:
				c.Status(fiber.StatusInternalServerError)
			}
			return nil
		}
		c.Context().SetUserValue(userKey, user)
		return c.Next()
	})
	app.Get(webpath.Signin, server.HandleGetSignIn)
	app.Post(webpath.Signin, server.HandlePostSignIn)
	app.Get(webpath.Signup, server.HandleGetSignup)
	app.Post(webpath.Signup, server.HandlePostSignup)
	app.Get(webpath.Signout, server.HandleSignOut)
	app.Get(webpath.Home, func(ctx *fiber.Ctx) error {
		return ctx.Redirect(webpath.Api)
	})

	app.Get(webpath.ApiHome, server.handleMain)
	app.Get(webpath.ApiMatchesList, server.handleMatches)
	app.Get(webpath.ApiNewMatch, server.handleCreateMatchGet)
	app.Post(webpath.ApiNewMatch, server.handleCreateMatchPost)
	app.Get(webpath.ApiGetPlayers, server.HandlePlayerInfo)
	app.Get(webpath.ApiNewPlayer, server.handleNewPlayerGet)
	app.Post(webpath.ApiNewPlayer, server.handleNewPlayerPost)
	app.Get(webpath.ApiForecast, server.handleForecast)
	app.Get(webpath.ApiExport, server.handleExport)
	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	if s.cfg.TLSCert != "" && s.cfg.TLSKey != "" {
		return s.app.ListenTLS(addr, s.cfg.TLSCert, s.cfg.TLSKey)
	}
	return s.app.Listen(addr)
}

const userKey = "user"

func (s *Server) handleMain(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	globalRating, err := s.playerService.GetRatings()
	if err != nil {
		return err
	}
	return ctx.Render("index", newData("Рейтинг").
		WithUser(user).
		With("Button", "rating").
		With("Players", globalRating),
		"layouts/main")
}

func (s *Server) handleMatches(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	matches, err := s.playerService.GetMatches()
	if err != nil {
		return err
	}
	return ctx.Render("matches", newData("Список матчей").
		WithUser(user).
		With("Button", "matches").
		With("Matches", matches),
		"layouts/main")
}

func (s *Server) handleCreateMatchGet(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	players, err := s.playerService.ListPlayers()
	if err != nil {
		return err
	}
	return ctx.Render("newMatch", newData("Добавить игру").
		WithUser(user).
		With("Players", players),
		"layouts/main")
}

func (s *Server) handleCreateMatchPost(ctx *fiber.Ctx) error {
	var req createMatch
	err := ctx.BodyParser(&req)
	if err != nil {
		ctx.Status(fiber.StatusBadRequest)
		return ctx.JSON(fiber.Map{"error": err.Error()})
	}
	err = req.Validate()
	if err != nil {
		ctx.Status(fiber.StatusBadRequest)
		return ctx.JSON(fiber.Map{"error": err.Error()})
	}
	match, err := s.playerService.CreateMatch(req.convertToDomainMatch())
	if err != nil {
		ctx.Status(fiber.StatusBadRequest)
		return ctx.JSON(fiber.Map{"error": err.Error()})
	}
	ctx.Status(fiber.StatusCreated)
	return ctx.JSON(fiber.Map{"id": match.ID})
}

func (s *Server) HandlePlayerInfo(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	strID := ctx.Params("id")
	id, err := uuid.Parse(strID)
	if err != nil {
		return err
	}
	player, err := s.playerService.Get(id)
	if err != nil {
		return err
	}
	history, err := s.playerService.RatingHistory(id)
	if err != nil {
		return err
	}
	games, err := s.playerService.GetPlayerGames(id)
	if err != nil {
		return err
	}
	data := newData(player.Name).
		WithUser(user).
		With("Player", player).
		With("History", history).
		With("Games", games)
	// chance to win a game of the whole field
	players, err := s.playerService.ListPlayers()
	if err != nil {
		return err
	}
	if len(players) >= 2 {
		ids := make([]uuid.UUID, 0, len(players))
		for i := range players {
			ids = append(ids, players[i].ID)
		}
		forecast, err := s.playerService.Forecast(ids, defaultForecastTrials)
		if err != nil {
			return err
		}
		data = data.With("WinChance", forecast[id]*100)
	}
	return ctx.Render("player", data, "layouts/main")
}

func (s *Server) handleForecast(ctx *fiber.Ctx) error {
	var ids []uuid.UUID
	for _, raw := range strings.Split(ctx.Query("players"), ",") {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			ctx.Status(fiber.StatusBadRequest)
			return ctx.JSON(fiber.Map{"error": err.Error()})
		}
		ids = append(ids, id)
	}
	trials := ctx.QueryInt("trials", defaultForecastTrials)
	forecast, err := s.playerService.Forecast(ids, trials)
	if err != nil {
		ctx.Status(fiber.StatusBadRequest)
		return ctx.JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(forecast)
}

const defaultForecastTrials = 10000

func (s *Server) handleExport(ctx *fiber.Ctx) error {
	data, err := s.playerService.Export()
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="export.json"`)
	return ctx.Send(data)
}

func (s *Server) HandleGetSignIn(ctx *fiber.Ctx) error {
	return ctx.Render("signin", newData("Войти"), "layouts/main")
}

func (s *Server) HandlePostSignIn(ctx *fiber.Ctx) error {
	req, err := parseSignInRequest(ctx)
	if err != nil {
		return ctx.Render("signin", newData("Войти").WithErrors(err), "layouts/main")
	}
	user, err := s.auth.Login(ctx.Context(), req.name, req.password)
	if err != nil {
		return ctx.Render("signin", newData("Войти").WithErrors(err), "layouts/main")
	}
	cookie, err := s.auth.GenerateJWTCookie(user.ID, s.cfg.Host)
	if err != nil {
		return err
	}
	ctx.Cookie(cookie)
	return ctx.Redirect(webpath.ApiHome)
}

func (s *Server) HandleGetSignup(ctx *fiber.Ctx) error {
	return ctx.Render("signup", newData("Зарегистрироваться"), "layouts/main")
}

func (s *Server) HandlePostSignup(ctx *fiber.Ctx) error {
	req, err := parseSignUpRequest(ctx)
	if err != nil {
		return ctx.Render("signup", newData("Зарегистрироваться").WithErrors(err), "layouts/main")
	}
	err = s.auth.SignUp(ctx.Context(), req.name, req.password)
	if err != nil {
		return ctx.Render("signup", newData("Зарегистрироваться").WithErrors(err), "layouts/main")
	}
	return ctx.Redirect(webpath.Signin)
}

func (s *Server) HandleSignOut(ctx *fiber.Ctx) error {
	ctx.ClearCookie("token")
	return ctx.Redirect(webpath.ApiHome)
}

func (s *Server) handleNewPlayerGet(ctx *fiber.Ctx) error {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	return ctx.Render("newPlayer", newData("Добавить игрока").WithUser(user), "layouts/main")
}

func (s *Server) handleNewPlayerPost(ctx *fiber.Ctx) error {
	name := ctx.FormValue("name", "")
	if name == "" {
		return errors.New("empty player name")
	}
	_, err := s.playerService.AddPlayer(name)
	if err != nil {
		user, _ := ctx.Context().UserValue(userKey).(users.User)
		return ctx.Render("newPlayer", newData("Добавить игрока").
			WithUser(user).
			WithErrors(err),
			"layouts/main")
	}
	return ctx.Redirect(webpath.ApiHome)
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006г.")
}

func formatRating(r float64) string {
	return strconv.Itoa(int(math.Round(r)))
}
