// main.go
//
// Entry point for the numpuzzle CLI.
// Responsibilities:
//   - Define the cobra command tree: play, score, config.
//   - Load configuration (defaults, YAML file, .env and NUMPUZZLE_* env).
//   - Configure zerolog, open the high-score store, build the engine.
//   - Run the Bubble Tea UI or the plain line console.
//
// Notes:
//   - Errors are returned to cobra; main prints them and exits 1.
//   - Invalid configuration is the only fatal game error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/numpuzzle/internal/config"
	"github.com/robalobadob/numpuzzle/internal/console"
	"github.com/robalobadob/numpuzzle/internal/game"
	"github.com/robalobadob/numpuzzle/internal/metrics"
	"github.com/robalobadob/numpuzzle/internal/random"
	"github.com/robalobadob/numpuzzle/internal/store"
	"github.com/robalobadob/numpuzzle/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "numpuzzle",
		Short:         "Guess the hidden number in as few attempts as possible",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $NUMPUZZLE_CONFIG)")

	root.AddCommand(newPlayCmd(&configPath))
	root.AddCommand(newScoreCmd(&configPath))
	root.AddCommand(newConfigCmd(&configPath))
	return root
}

type playFlags struct {
	plain bool
	seed  int64
	daily bool
}

func newPlayCmd(configPath *string) *cobra.Command {
	var f playFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start the game",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runPlay(ctx, *configPath, f)
		},
	}
	cmd.Flags().BoolVar(&f.plain, "plain", false, "line-oriented console instead of the full-screen UI")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "fixed seed for the target sequence (overrides config)")
	cmd.Flags().BoolVar(&f.daily, "daily", false, "use today's shared target sequence")
	return cmd
}

func runPlay(ctx context.Context, configPath string, f playFlags) error {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, !f.plain)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.Open(ctx, cfg.HighScore)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("close high-score store")
		}
	}()

	seed, err := pickSeed(cfg, f, time.Now())
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder(cfg.Game.MaxAttempts)
	celebrations, celebrate := tui.Celebrations()
	engine, err := game.NewEngine(ctx, cfg.Game, st,
		game.WithRand(random.New(seed)),
		game.WithObserver(recorder),
		game.WithCelebration(func(s game.Snapshot) {
			log.Info().Str("session", s.SessionID).Int("score", s.Score).Bool("newRecord", s.NewRecord).Msg("celebrate")
			celebrate(s)
		}),
	)
	if err != nil {
		return err
	}
	log.Info().Str("backend", cfg.HighScore.Backend).Bool("daily", f.daily).Int("highScore", engine.HighScore()).
		Msg("numpuzzle ready")

	if f.plain {
		err = console.New(engine, os.Stdin, os.Stdout).Run(ctx)
	} else {
		err = tui.Run(ctx, engine, celebrations)
	}
	if err != nil && ctx.Err() == nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("write metrics")
		}
	}
	return nil
}

// pickSeed resolves the target seed: --daily, then --seed, then config, then crypto.
func pickSeed(cfg *config.Config, f playFlags, now time.Time) (int64, error) {
	switch {
	case f.daily:
		return random.DailySeed(now, cfg.DailySalt), nil
	case f.seed != 0:
		return f.seed, nil
	case cfg.Seed != 0:
		return cfg.Seed, nil
	}
	return random.NewSeed()
}

func newScoreCmd(configPath *string) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the stored high score",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx, *configPath)
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg, false)
			if err != nil {
				return err
			}
			defer closeLog()

			st, err := store.Open(ctx, cfg.HighScore)
			if err != nil {
				return err
			}
			defer st.Close()

			if reset {
				if err := st.Set(ctx, 0); err != nil {
					return fmt.Errorf("reset high score: %w", err)
				}
			}
			best, _, err := st.Get(ctx)
			if err != nil {
				return fmt.Errorf("read high score: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), best)
			return err
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "set the stored high score back to 0 first")
	return cmd
}

func newConfigCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
