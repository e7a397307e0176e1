// internal/store/memory.go
//
// In-memory high-score slot.
// Used in tests and when durability is not required; the value is lost
// when the process exits.

package store

import (
	"context"
	"sync"
)

// Memory is a mutex-guarded scalar slot.
type Memory struct {
	mu    sync.RWMutex // guards value/set
	value int
	set   bool
}

// NewMemory constructs an empty slot.
func NewMemory() *Memory {
	return &Memory{}
}

// Get returns the stored score, ok=false if never set.
func (m *Memory) Get(_ context.Context) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value, m.set, nil
}

// Set replaces the stored score.
func (m *Memory) Set(_ context.Context, score int) error {
	if _, err := formatScore(score); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value, m.set = score, true
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
