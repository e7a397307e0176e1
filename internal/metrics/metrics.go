// Package metrics provides Prometheus metrics for play sessions.
//
// The registry is private to the Recorder and is never served over the
// network; WriteTextfile dumps it in the node-exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/robalobadob/numpuzzle/internal/game"
)

const namespace = "numpuzzle"

// Guess results used as label values.
const (
	ResultHigher  = "higher"
	ResultLower   = "lower"
	ResultCorrect = "correct"
	ResultInvalid = "invalid"
)

// Recorder observes engine transitions.
type Recorder struct {
	registry *prometheus.Registry

	sessionsStarted  prometheus.Counter
	guesses          *prometheus.CounterVec
	sessionsFinished *prometheus.CounterVec
	attempts         prometheus.Histogram
	bestScore        prometheus.Gauge
	newRecords       prometheus.Counter

	best int
}

// NewRecorder registers all metrics on a fresh registry.
// maxAttempts sizes the attempts histogram buckets.
func NewRecorder(maxAttempts int) *Recorder {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)

	return &Recorder{
		registry: reg,
		sessionsStarted: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Sessions started.",
		}),
		guesses: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_total",
			Help:      "Guesses submitted while playing, by result.",
		}, []string{"result"}),
		sessionsFinished: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_finished_total",
			Help:      "Sessions that reached an outcome, by status.",
		}, []string{"status"}),
		attempts: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "attempts_per_session",
			Help:      "Attempts used by finished sessions.",
			Buckets:   prometheus.LinearBuckets(1, 1, max(1, maxAttempts)),
		}),
		bestScore: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_best_score",
			Help:      "Best winning score seen by this process.",
		}),
		newRecords: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "new_records_total",
			Help:      "Wins that earned the record banner.",
		}),
	}
}

// Transition implements game.Observer.
func (r *Recorder) Transition(ev game.Event, prev, next game.Session) {
	switch ev.Intent {
	case game.IntentStart:
		r.sessionsStarted.Inc()
	case game.IntentGuess:
		if prev.Status != game.StatusPlaying {
			return
		}
		r.guesses.WithLabelValues(guessResult(prev, next)).Inc()
	}

	if next.Status.Terminal() && !prev.Status.Terminal() {
		r.sessionsFinished.WithLabelValues(string(next.Status)).Inc()
		r.attempts.Observe(float64(next.Attempts))
		if next.Status == game.StatusWon {
			if next.NewRecord {
				r.newRecords.Inc()
			}
			if next.Score > r.best {
				r.best = next.Score
				r.bestScore.Set(float64(next.Score))
			}
		}
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}

func guessResult(prev, next game.Session) string {
	switch {
	case next.Attempts == prev.Attempts:
		return ResultInvalid
	case next.LastGuess != nil && *next.LastGuess == next.Target:
		return ResultCorrect
	case next.LastGuess != nil && *next.LastGuess < next.Target:
		return ResultHigher
	}
	return ResultLower
}
