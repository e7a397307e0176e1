// internal/store/store.go
//
// Persistence for the single high-score slot.
// Backends:
//   - memory: process-local, lost on exit (tests, --backend memory).
//   - file:   YAML document on disk.
//   - sqlite: kv table in a SQLite database.
//   - redis:  one string key on a Redis server.
//
// Every backend stores the score as decimal text and reports ok=false when
// the slot has never been written.

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/robalobadob/numpuzzle/internal/config"
	"github.com/robalobadob/numpuzzle/internal/game"
)

var (
	// ErrCorrupt is returned when the stored text is not a non-negative integer.
	ErrCorrupt = errors.New("corrupt high score")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown high score backend")
	// ErrNegative is returned by Set for scores below zero.
	ErrNegative = errors.New("high score must not be negative")
)

// Store is a high-score slot that holds resources.
type Store interface {
	game.HighScoreStore
	Close() error
}

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg config.HighScore) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile:
		return NewFile(cfg.Path, cfg.Key), nil
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.Path, cfg.Key)
	case config.BackendRedis:
		return NewRedis(RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.Key,
		}), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

// parseScore converts stored text into a score.
func parseScore(text string) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrCorrupt, text)
	}
	return n, nil
}

// formatScore validates and renders a score for storage.
func formatScore(n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegative, n)
	}
	return strconv.Itoa(n), nil
}
