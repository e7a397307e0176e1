// internal/game/engine.go
//
// Engine owns one player's session and applies every transition in order.
// Responsibilities:
//   - Validate the config and read the stored high score once at startup.
//   - Stamp intents with the clock (and a drawn target on start) and run Reduce.
//   - Persist a strictly better score, fire the celebration hook on a win.
//   - Report each transition to observers and the log.
//
// Notes:
//   - All methods lock; Reduce itself is never applied concurrently.
//   - Store failures are logged and never surface to the view.
package game

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Engine serializes transitions for a single session.
type Engine struct {
	mu sync.Mutex

	cfg       Config
	store     HighScoreStore
	rng       Rand
	clock     Clock
	celebrate func(Snapshot)
	observers []Observer
	newID     func() string
	log       zerolog.Logger

	id    string
	state Session
	best  int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand sets the target source.
func WithRand(r Rand) Option { return func(e *Engine) { e.rng = r } }

// WithClock sets the time source for start/end markers.
func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

// WithCelebration registers the hook fired after a winning guess.
func WithCelebration(fn func(Snapshot)) Option { return func(e *Engine) { e.celebrate = fn } }

// WithObserver adds a transition observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithSessionIDs sets the generator for per-session identifiers.
func WithSessionIDs(fn func() string) Option { return func(e *Engine) { e.newID = fn } }

// NewEngine validates cfg and loads the best score from store.
// A missing or unreadable score counts as 0.
func NewEngine(ctx context.Context, cfg Config, store HighScoreStore, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:   cfg,
		store: store,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		clock: SystemClock{},
		newID: uuid.NewString,
		log:   log.Logger,
		state: Session{Status: StatusHome, History: []int{}},
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.store != nil {
		best, ok, err := e.store.Get(ctx)
		switch {
		case err != nil:
			e.log.Warn().Err(err).Msg("read high score; starting from 0")
		case ok:
			e.best = best
		}
	}
	e.log.Debug().Int("highScore", e.best).Int("min", cfg.MinNum).Int("max", cfg.MaxNum).
		Int("maxAttempts", cfg.MaxAttempts).Msg("engine ready")
	return e, nil
}

// Start begins a fresh session regardless of the current one.
func (e *Engine) Start(ctx context.Context) Snapshot {
	return e.Dispatch(ctx, Event{Intent: IntentStart})
}

// SubmitGuess applies raw input to the playing session.
func (e *Engine) SubmitGuess(ctx context.Context, raw string) Snapshot {
	return e.Dispatch(ctx, Event{Intent: IntentGuess, Raw: raw})
}

// ReturnHome moves to the home screen, discarding nothing.
func (e *Engine) ReturnHome(ctx context.Context) Snapshot {
	return e.Dispatch(ctx, Event{Intent: IntentReturnHome})
}

// Dispatch stamps ev with the current time (and a target on start) and applies it.
// The celebration hook runs after the lock is released.
func (e *Engine) Dispatch(ctx context.Context, ev Event) Snapshot {
	snap, won := e.apply(ctx, ev)
	if won && e.celebrate != nil {
		e.celebrate(snap)
	}
	return snap
}

func (e *Engine) apply(ctx context.Context, ev Event) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev.At = e.clock.Now()
	if ev.Intent == IntentStart {
		ev.Target = e.drawTarget()
		e.id = e.newID()
	}

	prev := e.state
	next := Reduce(e.cfg, e.best, prev, ev)
	e.state = next

	logger := e.log.With().Str("session", e.id).Str("intent", ev.Intent.String()).Logger()
	switch {
	case ev.Intent == IntentGuess && prev.Status == StatusPlaying && next.Attempts == prev.Attempts:
		logger.Debug().Str("raw", ev.Raw).Msg("guess rejected")
	case ev.Intent == IntentGuess && next.Attempts > prev.Attempts:
		logger.Debug().Int("attempts", next.Attempts).Str("status", string(next.Status)).Msg("guess applied")
	default:
		logger.Debug().Str("status", string(next.Status)).Msg("transition")
	}

	won := prev.Status != StatusWon && next.Status == StatusWon
	if won {
		e.recordScore(ctx, logger, next.Score)
	}
	for _, o := range e.observers {
		o.Transition(ev, prev, next)
	}

	snap := newSnapshot(e.id, e.cfg, next, e.best)
	if next.Status.Terminal() && !prev.Status.Terminal() {
		logger.Info().Str("status", string(next.Status)).Int("attempts", next.Attempts).
			Int("score", next.Score).Str("elapsed", snap.ElapsedClock()).Msg("session finished")
	}
	return snap, won
}

// Snapshot returns the current view copy.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return newSnapshot(e.id, e.cfg, e.state, e.best)
}

// HighScore returns the best score known to this process.
func (e *Engine) HighScore() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.best
}

// SessionID identifies the current session; empty before the first start.
func (e *Engine) SessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// Config returns the validated game constants.
func (e *Engine) Config() Config { return e.cfg }

// drawTarget picks uniformly in [MinNum, MaxNum].
func (e *Engine) drawTarget() int {
	return e.cfg.MinNum + e.rng.IntN(e.cfg.MaxNum-e.cfg.MinNum+1)
}

// recordScore persists score when it strictly beats the best.
// The in-memory best advances even if the write fails.
func (e *Engine) recordScore(ctx context.Context, logger zerolog.Logger, score int) {
	if score <= e.best {
		return
	}
	e.best = score
	if e.store == nil {
		return
	}
	if err := e.store.Set(ctx, score); err != nil {
		logger.Error().Err(err).Int("score", score).Msg("persist high score")
		return
	}
	logger.Info().Int("score", score).Msg("new high score")
}
