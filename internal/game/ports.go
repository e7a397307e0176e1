package game

import (
	"context"
	"time"
)

// Rand draws the hidden target. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Clock abstracts time to keep sessions deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// HighScoreStore is the persisted high-score slot.
// Get reports ok=false when nothing has been stored yet.
type HighScoreStore interface {
	Get(ctx context.Context) (score int, ok bool, err error)
	Set(ctx context.Context, score int) error
}

// Observer is told about every transition the engine applies.
type Observer interface {
	Transition(ev Event, prev, next Session)
}
