// internal/random/random.go
//
// Target sources for the game engine.
// Responsibilities:
//   - NewSeed: high-entropy seed from crypto/rand.
//   - New: a seeded math/rand/v2 generator (satisfies game.Rand).
//   - DailySeed: deterministic seed from HMAC(salt, YYYY-MM-DD) so every
//     player gets the same target sequence on the same UTC day.

package random

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a PCG generator for seed. Equal seeds yield equal sequences.
func New(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailySeed derives a seed from HMAC-SHA256(salt, DateKey(t)).
func DailySeed(t time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// first 8 bytes are plenty of entropy for a game seed
	return int64(binary.BigEndian.Uint64(sum[:8]))
}
