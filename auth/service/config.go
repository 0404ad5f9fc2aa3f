package service

import (
	"github.com/BurntSushi/toml"
)

const configPath = "configs/auth.toml"

type Rule struct {
	Name   string   `toml:"name"`
	Path   string   `toml:"path"`
	Method []string `toml:"method"`
	Allow  []string `toml:"allow"`
}

type Config struct {
	SqliteFile     string `toml:"sqlite_file"`
	Token          string `toml:"token"`
	Expiration     string `toml:"expiration"`
	RootPassword   string `toml:"root_password"`
	PasswordPepper string `toml:"password_pepper"`
	Rules          []Rule `toml:"rules"`
}

func NewConfig() (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(configPath, &cfg)
	if err != nil {
		return Config{}, err
	}
	if cfg.SqliteFile == "" {
		cfg.SqliteFile = "auth.sqlite"
	}
	if cfg.Expiration == "" {
		cfg.Expiration = "24h"
	}
	return cfg, nil
}
