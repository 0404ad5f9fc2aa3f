package config

import (
	"os"

	"github.com/goserg/multielo/internal/elo"

	"github.com/BurntSushi/toml"
)

const (
	serverConfigPath = "configs/server.toml"
	botConfigPath    = "configs/bot.toml"
)

type TgBot struct {
	TelegramAPIToken string `toml:"telegram_apitoken"`
	AdminPassword    string `toml:"admin_password"`
	SqliteFile       string `toml:"sqlite_file"`
}

type Server struct {
	Host          string       `toml:"host"`
	Port          int          `toml:"port"`
	TgBotEnabled  bool         `toml:"tg_bot_enabled"`
	Debug         bool         `toml:"debug_mode"`
	TLSCert       string       `toml:"tls_cert"`
	TLSKey        string       `toml:"tls_key"`
	SqliteFile    string       `toml:"sqlite_file"`
	InitialRating float64      `toml:"initial_rating"`
	Elo           elo.Settings `toml:"elo"`
}

type Config struct {
	TgBot  TgBot
	Server Server
}

func New() (Config, error) {
	var serverCfg Server
	_, err := toml.DecodeFile(serverConfigPath, &serverCfg)
	if err != nil {
		return Config{}, err
	}
	if serverCfg.SqliteFile == "" {
		serverCfg.SqliteFile = "rating.sqlite"
	}
	if serverCfg.InitialRating == 0 {
		serverCfg.InitialRating = 1000
	}

	var tgBotCfg TgBot
	_, err = toml.DecodeFile(botConfigPath, &tgBotCfg)
	if err != nil {
		return Config{}, err
	}
	token := os.Getenv("TELEGRAM_APITOKEN")
	if token != "" {
		tgBotCfg.TelegramAPIToken = token
	}
	if tgBotCfg.SqliteFile == "" {
		tgBotCfg.SqliteFile = "bot.sqlite"
	}

	return Config{
		TgBot:  tgBotCfg,
		Server: serverCfg,
	}, nil
}
