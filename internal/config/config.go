// Package config loads server settings from the environment
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/dx3rd-api/internal/errors"
)

// Config holds the server settings
type Config struct {
	GRPCPort     int           `env:"DX3RD_GRPC_PORT" envDefault:"50051"`
	RedisAddr    string        `env:"DX3RD_REDIS_ADDR" envDefault:"localhost:6379"`
	LogLevel     string        `env:"DX3RD_LOG_LEVEL" envDefault:"info"`
	SelectionTTL time.Duration `env:"DX3RD_SELECTION_TTL" envDefault:"15m"`
}

// Load reads the optional .env files and then the environment. Variables
// already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("GRPCPort", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	if c.SelectionTTL <= 0 {
		vb.Field("SelectionTTL", "must be positive")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		vb.Field("LogLevel", err.Error())
	}
	return vb.Build()
}

// ParseLevel maps a level name to a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, errors.InvalidArgumentf("unknown log level %q", name)
	}
	return level, nil
}
