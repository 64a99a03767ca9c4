package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/smokehouse/internal/domain/model"
)

// Environment variable names.
const (
	EnvPrefix     = "SMOKEHOUSE_"
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if SMOKEHOUSE_CONFIG is set
//  3. env (prefix SMOKEHOUSE_), including values from a .env file in the
//     working directory; variables already set in the process win over .env.
func Load(_ context.Context) (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SMOKEHOUSE_HISTORY_PATH -> history_path (flat keys).
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinWeightLbs <= 0 || c.MinWeightLbs > c.MaxWeightLbs:
		return fmt.Errorf("%w: weight range [%g, %g]", ErrInvalidConfig, c.MinWeightLbs, c.MaxWeightLbs)
	case c.MinOutsideTempF > c.MaxOutsideTempF:
		return fmt.Errorf("%w: outside temperature range [%d, %d]", ErrInvalidConfig, c.MinOutsideTempF, c.MaxOutsideTempF)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if _, err := model.ParseClock(c.DefaultStartTime); err != nil {
		return fmt.Errorf("%w: default_start_time: %w", ErrInvalidConfig, err)
	}
	return nil
}
