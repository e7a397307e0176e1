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
)

const (
	envPrefix  = "NUMPUZZLE_"
	envConfig  = "NUMPUZZLE_CONFIG"
	envNesting = "__"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. YAML file at path, or NUMPUZZLE_CONFIG when path is empty
//  3. env (prefix NUMPUZZLE_, "__" separates nested keys)
//
// A .env file in the working directory is loaded first if present.
func Load(_ context.Context, path string) (*Config, error) {
	_ = godotenv.Load()

	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(envConfig)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// NUMPUZZLE_GAME__MAX_ATTEMPTS -> game.max_attempts
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		if s == strings.TrimPrefix(envConfig, envPrefix) {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(s), envNesting, ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
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

// Validate checks the game constants and the backend selection.
func (c *Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.HighScore.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite:
		if c.HighScore.Path == "" {
			return fmt.Errorf("%w: high_score.path is required for %s", ErrInvalidConfig, c.HighScore.Backend)
		}
	case BackendRedis:
		if c.HighScore.RedisAddr == "" {
			return fmt.Errorf("%w: high_score.redis_addr is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown high_score.backend %q", ErrInvalidConfig, c.HighScore.Backend)
	}
	if c.HighScore.Key == "" {
		return fmt.Errorf("%w: high_score.key must not be empty", ErrInvalidConfig)
	}
	return nil
}
