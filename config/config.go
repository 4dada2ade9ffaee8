package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	// Registration workflow
	RegisterTimeout time.Duration `env:"REGISTER_TIMEOUT" envDefault:"10m"`
	JudgeBaseURL    string        `env:"JUDGE_BASE_URL" envDefault:"https://www.acmicpc.net" validate:"url"`
	JudgeTimeout    time.Duration `env:"JUDGE_TIMEOUT" envDefault:"10s"`

	// Admin API
	Port      string `env:"PORT" envDefault:"8080" validate:"required"`
	JWTSecret string `env:"JWT_SECRET,required" validate:"required,min=32"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
