// internal/game/types.go
//
// Core type definitions for the number puzzle.
// Defines:
//   - Status: which screen the session drives (home/playing/won/gameover).
//   - Config: the range and attempt budget, validated once at startup.
//   - Session: the authoritative state of one play-through.
//   - Intent/Event: the explicit commands consumed by Reduce.

package game

import (
	"errors"
	"fmt"
	"time"
)

// Status represents the lifecycle position of a session.
type Status string

const (
	StatusHome     Status = "HOME"
	StatusPlaying  Status = "PLAYING"
	StatusWon      Status = "WON"
	StatusGameOver Status = "GAMEOVER"
)

// Terminal reports whether the session has reached an outcome.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusGameOver
}

var (
	// ErrInvalidConfig is returned when the range or attempt budget is unusable.
	ErrInvalidConfig = errors.New("invalid game config")
	// ErrInvalidGuess marks input that is not an integer inside the range.
	ErrInvalidGuess = errors.New("invalid guess")
)

const (
	defaultMinNum      = 1
	defaultMaxNum      = 100
	defaultMaxAttempts = 15
)

// Config holds the process-wide game constants.
type Config struct {
	MinNum      int `koanf:"min_num" yaml:"min_num"`
	MaxNum      int `koanf:"max_num" yaml:"max_num"`
	MaxAttempts int `koanf:"max_attempts" yaml:"max_attempts"`
}

// DefaultConfig returns the classic 1..100 range with 15 attempts.
func DefaultConfig() Config {
	return Config{
		MinNum:      defaultMinNum,
		MaxNum:      defaultMaxNum,
		MaxAttempts: defaultMaxAttempts,
	}
}

// Validate enforces positive values, MinNum < MaxNum and at least one attempt.
func (c Config) Validate() error {
	switch {
	case c.MinNum < 1 || c.MaxNum < 1:
		return fmt.Errorf("%w: range bounds must be positive (got %d..%d)", ErrInvalidConfig, c.MinNum, c.MaxNum)
	case c.MinNum >= c.MaxNum:
		return fmt.Errorf("%w: min_num %d must be below max_num %d", ErrInvalidConfig, c.MinNum, c.MaxNum)
	case c.MaxAttempts < 1:
		return fmt.Errorf("%w: max_attempts must be at least 1 (got %d)", ErrInvalidConfig, c.MaxAttempts)
	}
	return nil
}

// Session holds the state of a single play-through.
// A zero StartTime/EndTime means the marker has not been set.
type Session struct {
	Target    int       // Hidden number; only shown once the session is terminal.
	Attempts  int       // Accepted guesses so far.
	History   []int     // Accepted guesses, most recent first.
	LastGuess *int      // Most recent accepted guess, nil before the first one.
	Feedback  string    // Hint or status line for the view.
	Status    Status    // Drives which screen is shown.
	StartTime time.Time // Set on start.
	EndTime   time.Time // Set once, on entering WON or GAMEOVER.
	Score     int       // Final score, only non-zero on WON.
	NewRecord bool      // Score matched or beat the best at the moment of winning.
}

// Intent is the user action forwarded by a view.
type Intent int

const (
	IntentStart Intent = iota + 1
	IntentGuess
	IntentReturnHome
)

func (i Intent) String() string {
	switch i {
	case IntentStart:
		return "start"
	case IntentGuess:
		return "guess"
	case IntentReturnHome:
		return "return_home"
	}
	return fmt.Sprintf("intent(%d)", int(i))
}

// Event is one input to Reduce. Target and At are stamped by the owner so
// that the transition itself stays free of randomness and clock reads.
type Event struct {
	Intent Intent
	Raw    string    // Guess text, for IntentGuess.
	Target int       // Pre-drawn target, for IntentStart.
	At     time.Time // Moment the intent was accepted.
}
