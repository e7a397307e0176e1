// Package config defines the process configuration and its defaults.
//
// Values are layered by Load: defaults, then an optional YAML file, then
// NUMPUZZLE_* environment variables.
package config

import (
	"github.com/robalobadob/numpuzzle/internal/game"
)

// Supported high-score backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: trace, debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`

	// LogFile receives logs; empty means stderr (discarded under the TUI).
	LogFile string `koanf:"log_file" yaml:"log_file"`

	// MetricsFile, when set, receives a Prometheus textfile dump on exit.
	MetricsFile string `koanf:"metrics_file" yaml:"metrics_file"`

	// Seed fixes the target sequence; 0 draws a fresh seed.
	Seed int64 `koanf:"seed" yaml:"seed"`

	// DailySalt keys the per-day seed used by `play --daily`.
	DailySalt string `koanf:"daily_salt" yaml:"daily_salt"`

	Game      game.Config `koanf:"game" yaml:"game"`
	HighScore HighScore   `koanf:"high_score" yaml:"high_score"`
}

// HighScore selects and configures the persisted high-score slot.
type HighScore struct {
	Backend       string `koanf:"backend" yaml:"backend"`
	Path          string `koanf:"path" yaml:"path"` // file or sqlite database path
	Key           string `koanf:"key" yaml:"key"`
	RedisAddr     string `koanf:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `koanf:"redis_password" yaml:"-"`
	RedisDB       int    `koanf:"redis_db" yaml:"redis_db"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		DailySalt: "numpuzzle",
		Game:      game.DefaultConfig(),
		HighScore: HighScore{
			Backend:   BackendFile,
			Path:      "./data/highscore.yaml",
			Key:       "highScore",
			RedisAddr: "localhost:6379",
		},
	}
}
