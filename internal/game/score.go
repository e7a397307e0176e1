package game

import (
	"fmt"
	"time"
)

const (
	scoreBase       = 10000
	scorePerAttempt = 250
)

// Score is the points for a win after the given number of attempts.
func Score(attempts int) int {
	return max(0, scoreBase-attempts*scorePerAttempt)
}

// IsNewRecord reports whether a finishing score earns the record banner.
// A tie with the stored best counts, even though it is not persisted.
func IsNewRecord(score, best int) bool {
	return score > 0 && score >= best
}

// FormatElapsed renders d as zero-padded MM:SS, truncated to whole seconds.
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
