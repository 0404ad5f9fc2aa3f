package elo

import (
	"errors"
	"fmt"
)

// Default rating parameters, the classical chess values.
const (
	DefaultK = 32
	DefaultD = 400

	DefaultScoreBase = 1.5
)

const (
	ScoreLinear      = "linear"
	ScoreExponential = "exponential"
)

// ErrInvalidConfig is returned by NewConfig for settings the engine cannot
// work with.
var ErrInvalidConfig = errors.New("invalid rating config")

// Settings is the raw, config file shape of the rating parameters. Zero
// fields fall back to the defaults.
type Settings struct {
	K             float64 `toml:"k"`
	D             float64 `toml:"d"`
	ScoreFunction string  `toml:"score_function"`
	ScoreBase     float64 `toml:"score_base"`
}

// Config holds validated rating parameters. The zero value is treated as
// DefaultConfig by the engine.
type Config struct {
	k           float64
	d           float64
	exponential bool
	base        float64
}

// NewConfig validates settings and fills the defaults in.
func NewConfig(s Settings) (Config, error) {
	cfg := DefaultConfig()
	if s.K != 0 {
		if s.K < 0 {
			return Config{}, fmt.Errorf("%w: k must be positive, got %v", ErrInvalidConfig, s.K)
		}
		cfg.k = s.K
	}
	if s.D != 0 {
		if s.D < 0 {
			return Config{}, fmt.Errorf("%w: d must be positive, got %v", ErrInvalidConfig, s.D)
		}
		cfg.d = s.D
	}
	switch s.ScoreFunction {
	case "", ScoreLinear:
		cfg.exponential = false
	case ScoreExponential:
		cfg.exponential = true
		if s.ScoreBase != 0 {
			if s.ScoreBase <= 1 {
				return Config{}, fmt.Errorf("%w: score base must be greater than 1, got %v", ErrInvalidConfig, s.ScoreBase)
			}
			cfg.base = s.ScoreBase
		}
	default:
		return Config{}, fmt.Errorf("%w: unknown score function %q", ErrInvalidConfig, s.ScoreFunction)
	}
	return cfg, nil
}

func DefaultConfig() Config {
	return Config{
		k:           DefaultK,
		d:           DefaultD,
		exponential: false,
		base:        DefaultScoreBase,
	}
}

func (c Config) K() float64 { return c.k }

func (c Config) D() float64 { return c.d }
