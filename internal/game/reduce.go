// internal/game/reduce.go
//
// Pure transition function for a session.
// Responsibilities:
//   - Start: reset counters and history around a pre-drawn target.
//   - Guess: validate, count the attempt, compare, and pick the outcome.
//   - ReturnHome: switch the screen, leave everything else as it was.
//
// Notes:
//   - A win is checked before the attempt budget, so a correct final guess wins.
//   - Invalid input only rewrites Feedback; it never consumes an attempt.

package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Feedback lines shown to the player.
const (
	FeedbackWaiting  = "Waiting for your first scan sequence..."
	FeedbackWon      = "OVERRIDE SUCCESS: Target match found."
	FeedbackGameOver = "SYSTEM FAILURE: Max attempts reached."
	FeedbackHigher   = "🔼 HINT: Higher. Increase frequency."
	FeedbackLower    = "🔽 HINT: Lower. Reduce frequency."
)

// RangeError returns the feedback for rejected input.
func RangeError(cfg Config) string {
	return fmt.Sprintf("SYSTEM ERROR: Value must be between %d-%d", cfg.MinNum, cfg.MaxNum)
}

// IdlePrompt is what a view shows when a playing session has no feedback yet.
func IdlePrompt(cfg Config) string {
	return fmt.Sprintf("Identify the encoded value within %d-%d.", cfg.MinNum, cfg.MaxNum)
}

// ParseGuess converts raw input into a guess inside the configured range.
func ParseGuess(cfg Config, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidGuess, raw)
	}
	if n < cfg.MinNum || n > cfg.MaxNum {
		return 0, fmt.Errorf("%w: %d outside %d-%d", ErrInvalidGuess, n, cfg.MinNum, cfg.MaxNum)
	}
	return n, nil
}

// Reduce computes the session that follows s after ev.
// best is the stored high score, used only to flag a new record on a win.
func Reduce(cfg Config, best int, s Session, ev Event) Session {
	switch ev.Intent {
	case IntentStart:
		return Session{
			Target:    ev.Target,
			History:   []int{},
			Feedback:  FeedbackWaiting,
			Status:    StatusPlaying,
			StartTime: ev.At,
		}
	case IntentReturnHome:
		s.Status = StatusHome
		return s
	case IntentGuess:
		if s.Status != StatusPlaying {
			return s
		}
		return applyGuess(cfg, best, s, ev)
	}
	return s
}

// applyGuess handles a guess against a playing session.
func applyGuess(cfg Config, best int, s Session, ev Event) Session {
	guess, err := ParseGuess(cfg, ev.Raw)
	if err != nil {
		s.Feedback = RangeError(cfg)
		return s
	}

	history := make([]int, 0, len(s.History)+1)
	history = append(history, guess)
	history = append(history, s.History...)

	s.Attempts++
	s.History = history
	s.LastGuess = &guess

	switch {
	case guess == s.Target:
		s.Status = StatusWon
		s.Feedback = FeedbackWon
		s.EndTime = ev.At
		s.Score = Score(s.Attempts)
		s.NewRecord = IsNewRecord(s.Score, best)
	case s.Attempts >= cfg.MaxAttempts:
		s.Status = StatusGameOver
		s.Feedback = FeedbackGameOver
		s.EndTime = ev.At
	case guess < s.Target:
		s.Feedback = FeedbackHigher
	default:
		s.Feedback = FeedbackLower
	}
	return s
}
