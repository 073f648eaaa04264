// Package config holds the application's configuration settings.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// AppConfig defines environment-based configuration for the application.
type AppConfig struct {
	Http   HttpConfig
	Stripe StripeConfig
	Site   SiteConfig
	Sentry SentryConfig
	Log    LogConfig
}

type HttpConfig struct {
	Addr      string `env:"PAYMENTS_HTTP_ADDR" env-default:":8080"`
	StaticDir string `env:"PAYMENTS_STATIC_DIR" env-default:"./frontend"`
}

// StripeConfig is read once at startup. An empty SecretKey is not a startup
// error: every checkout request answers 500 until it is set.
type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY"`
	APIURL    string `env:"STRIPE_API_URL"`
}

type SiteConfig struct {
	URL string `env:"URL"`
}

type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"CONTEXT" env-default:"dev"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads the configuration from the process environment.
func Load() (AppConfig, error) {
	var cfg AppConfig

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("reading config from env: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
