package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numpuzzle/internal/config"
)

// setupLogging points the global zerolog logger at cfg.LogFile, or at stderr.
// With fullscreen set and no log file, logs are discarded so they do not
// draw over the UI.
func setupLogging(cfg *config.Config, fullscreen bool) (func(), error) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log_level %q", config.ErrInvalidConfig, cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	closer := func() {}
	var w io.Writer
	switch {
	case cfg.LogFile != "":
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closer = func() { _ = f.Close() }
	case fullscreen:
		w = io.Discard
	default:
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return closer, nil
}
