package game

import "time"

// Snapshot is the read-only copy of a session handed to views.
type Snapshot struct {
	SessionID   string
	Status      Status
	Attempts    int
	MaxAttempts int
	MinNum      int
	MaxNum      int
	History     []int
	LastGuess   *int
	Feedback    string
	StartTime   time.Time
	EndTime     time.Time
	Target      int // zero until the session is terminal
	Score       int
	HighScore   int
	NewRecord   bool
}

func newSnapshot(id string, cfg Config, s Session, best int) Snapshot {
	snap := Snapshot{
		SessionID:   id,
		Status:      s.Status,
		Attempts:    s.Attempts,
		MaxAttempts: cfg.MaxAttempts,
		MinNum:      cfg.MinNum,
		MaxNum:      cfg.MaxNum,
		History:     make([]int, len(s.History)),
		Feedback:    s.Feedback,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Score:       s.Score,
		HighScore:   best,
		NewRecord:   s.NewRecord,
	}
	copy(snap.History, s.History)
	if s.LastGuess != nil {
		g := *s.LastGuess
		snap.LastGuess = &g
	}
	if s.Status.Terminal() {
		snap.Target = s.Target
	}
	return snap
}

// Elapsed is the play time, available once both markers are set.
func (s Snapshot) Elapsed() time.Duration {
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// ElapsedClock formats Elapsed as MM:SS.
func (s Snapshot) ElapsedClock() string { return FormatElapsed(s.Elapsed()) }

// Remaining is the number of attempts left in the budget.
func (s Snapshot) Remaining() int { return max(0, s.MaxAttempts-s.Attempts) }

// Progress is the used fraction of the attempt budget, 0..1.
func (s Snapshot) Progress() float64 {
	if s.MaxAttempts <= 0 {
		return 0
	}
	return float64(s.Attempts) / float64(s.MaxAttempts)
}
