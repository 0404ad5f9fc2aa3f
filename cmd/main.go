package main

import (
	"context"
	"fmt"
	"os"

	authservice "github.com/goserg/multielo/auth/service"
	authsqlite "github.com/goserg/multielo/auth/storage/sqlite"
	botsqlite "github.com/goserg/multielo/bot/botstorage/sqlite"
	"github.com/goserg/multielo/bot/tgbot"
	"github.com/goserg/multielo/internal/config"
	"github.com/goserg/multielo/internal/elo"
	"github.com/goserg/multielo/internal/logger"
	"github.com/goserg/multielo/internal/service"
	"github.com/goserg/multielo/internal/storage/sqlite"
	"github.com/goserg/multielo/internal/web"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.Debug)

	eloCfg, err := elo.NewConfig(cfg.Server.Elo)
	if err != nil {
		return err
	}

	storage, err := sqlite.New(cfg.Server.SqliteFile, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.WithError(err).Error("closing storage")
		}
	}()

	playerService := service.New(storage, storage, eloCfg, cfg.Server.InitialRating, log)

	authCfg, err := authservice.NewConfig()
	if err != nil {
		return err
	}
	authStorage, err := authsqlite.New(authCfg.SqliteFile, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := authStorage.Close(); err != nil {
			log.WithError(err).Error("closing auth storage")
		}
	}()
	authService, err := authservice.New(context.Background(), authCfg, authStorage)
	if err != nil {
		return err
	}

	if cfg.Server.TgBotEnabled {
		botStorage, err := botsqlite.New(log, cfg.TgBot)
		if err != nil {
			return err
		}
		defer func() {
			if err := botStorage.Close(); err != nil {
				log.WithError(err).Error("closing bot storage")
			}
		}()
		bot, err := tgbot.New(playerService, botStorage, cfg, log)
		if err != nil {
			return err
		}
		go bot.Run()
		defer bot.Stop()
	}

	server, err := web.New(playerService, cfg.Server, authService)
	if err != nil {
		return err
	}
	return server.Serve()
}
