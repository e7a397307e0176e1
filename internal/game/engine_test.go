package game_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/robalobadob/numpuzzle/internal/game"
	"github.com/robalobadob/numpuzzle/internal/store"
)

// fixedTarget makes the engine draw target every time.
type fixedTarget struct {
	cfg    game.Config
	target int
	calls  int
}

func (f *fixedTarget) IntN(n int) int {
	f.calls++
	return f.target - f.cfg.MinNum
}

// stepClock advances by step on every read.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	v := c.now
	c.now = c.now.Add(c.step)
	return v
}

// spyStore wraps a memory slot and records writes.
type spyStore struct {
	*store.Memory
	sets   []int
	getErr error
	setErr error
}

func (s *spyStore) Get(ctx context.Context) (int, bool, error) {
	if s.getErr != nil {
		return 0, false, s.getErr
	}
	return s.Memory.Get(ctx)
}

func (s *spyStore) Set(ctx context.Context, v int) error {
	s.sets = append(s.sets, v)
	if s.setErr != nil {
		return s.setErr
	}
	return s.Memory.Set(ctx, v)
}

type recordingObserver struct{ events []game.Intent }

func (r *recordingObserver) Transition(ev game.Event, _, _ game.Session) {
	r.events = append(r.events, ev.Intent)
}

func newEngine(target int, st game.HighScoreStore, opts ...game.Option) (*game.Engine, *fixedTarget) {
	cfg := game.DefaultConfig()
	rng := &fixedTarget{cfg: cfg, target: target}
	base := []game.Option{
		game.WithRand(rng),
		game.WithClock(&stepClock{now: t0, step: 10 * time.Second}),
		game.WithSessionIDs(func() string { return "sess-1" }),
	}
	e, err := game.NewEngine(context.Background(), cfg, st, append(base, opts...)...)
	convey.So(err, convey.ShouldBeNil)
	return e, rng
}

func TestEngine_New(t *testing.T) {
	convey.Convey("Given engine construction", t, func() {
		ctx := context.Background()

		convey.Convey("An invalid config aborts initialization", func() {
			_, err := game.NewEngine(ctx, game.Config{MinNum: 5, MaxNum: 5, MaxAttempts: 1}, store.NewMemory())
			convey.So(errors.Is(err, game.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("An empty store starts at zero on the home screen", func() {
			e, _ := newEngine(42, store.NewMemory())
			convey.So(e.HighScore(), convey.ShouldEqual, 0)
			convey.So(e.Snapshot().Status, convey.ShouldEqual, game.StatusHome)
		})

		convey.Convey("A stored score is read once", func() {
			mem := store.NewMemory()
			convey.So(mem.Set(ctx, 9000), convey.ShouldBeNil)
			e, _ := newEngine(42, mem)
			convey.So(e.HighScore(), convey.ShouldEqual, 9000)
		})

		convey.Convey("A failing read counts as zero", func() {
			e, _ := newEngine(42, &spyStore{Memory: store.NewMemory(), getErr: errors.New("boom")})
			convey.So(e.HighScore(), convey.ShouldEqual, 0)
		})
	})
}

func TestEngine_ScenarioA(t *testing.T) {
	convey.Convey("Given an engine with target 42 and a celebration hook", t, func() {
		ctx := context.Background()
		st := &spyStore{Memory: store.NewMemory()}
		var celebrated []game.Snapshot
		obs := &recordingObserver{}
		e, rng := newEngine(42, st,
			game.WithCelebration(func(s game.Snapshot) { celebrated = append(celebrated, s) }),
			game.WithObserver(obs),
		)

		start := e.Start(ctx)
		convey.So(rng.calls, convey.ShouldEqual, 1)
		convey.So(start.Status, convey.ShouldEqual, game.StatusPlaying)
		convey.So(start.Target, convey.ShouldEqual, 0)
		convey.So(start.SessionID, convey.ShouldEqual, "sess-1")

		first := e.SubmitGuess(ctx, "50")
		second := e.SubmitGuess(ctx, "25")
		convey.So(second.Target, convey.ShouldEqual, 0)
		final := e.SubmitGuess(ctx, "42")

		convey.Convey("Then hints and outcome follow the scenario", func() {
			convey.So(first.Feedback, convey.ShouldEqual, game.FeedbackLower)
			convey.So(first.Attempts, convey.ShouldEqual, 1)
			convey.So(second.Feedback, convey.ShouldEqual, game.FeedbackHigher)
			convey.So(second.Attempts, convey.ShouldEqual, 2)
			convey.So(final.Status, convey.ShouldEqual, game.StatusWon)
			convey.So(final.Attempts, convey.ShouldEqual, 3)
			convey.So(final.Score, convey.ShouldEqual, 9250)
			convey.So(final.Target, convey.ShouldEqual, 42)
			convey.So(final.NewRecord, convey.ShouldBeTrue)
			convey.So(final.ElapsedClock(), convey.ShouldEqual, "00:30")
		})

		convey.Convey("Then the score is persisted and celebrated once", func() {
			convey.So(st.sets, convey.ShouldResemble, []int{9250})
			convey.So(e.HighScore(), convey.ShouldEqual, 9250)
			convey.So(final.HighScore, convey.ShouldEqual, 9250)
			convey.So(celebrated, convey.ShouldHaveLength, 1)
			convey.So(celebrated[0].Score, convey.ShouldEqual, 9250)
		})

		convey.Convey("Then every transition reached the observer", func() {
			convey.So(obs.events, convey.ShouldResemble, []game.Intent{
				game.IntentStart, game.IntentGuess, game.IntentGuess, game.IntentGuess,
			})
		})

		convey.Convey("When the snapshot history is modified by a view", func() {
			final.History[0] = 99

			convey.Convey("Then the engine copy is untouched", func() {
				convey.So(e.Snapshot().History, convey.ShouldResemble, []int{42, 25, 50})
			})
		})
	})
}

func TestEngine_HighScoreUpdates(t *testing.T) {
	convey.Convey("Given a stored best of 9250", t, func() {
		ctx := context.Background()
		mem := store.NewMemory()
		convey.So(mem.Set(ctx, 9250), convey.ShouldBeNil)
		st := &spyStore{Memory: mem}
		e, _ := newEngine(42, st)

		convey.Convey("When a win ties the best", func() {
			e.Start(ctx)
			e.SubmitGuess(ctx, "1")
			e.SubmitGuess(ctx, "2")
			snap := e.SubmitGuess(ctx, "42")

			convey.Convey("Then the banner shows but storage is untouched", func() {
				convey.So(snap.NewRecord, convey.ShouldBeTrue)
				convey.So(st.sets, convey.ShouldBeEmpty)
				convey.So(e.HighScore(), convey.ShouldEqual, 9250)
			})
		})

		convey.Convey("When a win scores lower", func() {
			e.Start(ctx)
			for _, g := range []string{"1", "2", "3", "4"} {
				e.SubmitGuess(ctx, g)
			}
			snap := e.SubmitGuess(ctx, "42")

			convey.Convey("Then nothing is recorded", func() {
				convey.So(snap.Score, convey.ShouldEqual, 8750)
				convey.So(snap.NewRecord, convey.ShouldBeFalse)
				convey.So(st.sets, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a win scores higher but the write fails", func() {
			st.setErr = errors.New("disk full")
			e.Start(ctx)
			snap := e.SubmitGuess(ctx, "42")

			convey.Convey("Then the in-memory best still advances", func() {
				convey.So(snap.Score, convey.ShouldEqual, 9750)
				convey.So(st.sets, convey.ShouldResemble, []int{9750})
				convey.So(e.HighScore(), convey.ShouldEqual, 9750)
			})
		})
	})
}

func TestEngine_ScenarioB(t *testing.T) {
	convey.Convey("Given target 7 and fifteen misses", t, func() {
		ctx := context.Background()
		celebrated := 0
		e, _ := newEngine(7, store.NewMemory(), game.WithCelebration(func(game.Snapshot) { celebrated++ }))
		e.Start(ctx)
		var snap game.Snapshot
		for i := 0; i < 15; i++ {
			snap = e.SubmitGuess(ctx, "90")
		}

		convey.So(snap.Status, convey.ShouldEqual, game.StatusGameOver)
		convey.So(snap.EndTime.IsZero(), convey.ShouldBeFalse)
		convey.So(snap.Score, convey.ShouldEqual, 0)
		convey.So(snap.Target, convey.ShouldEqual, 7)
		convey.So(snap.Remaining(), convey.ShouldEqual, 0)
		convey.So(celebrated, convey.ShouldEqual, 0)
		convey.So(e.HighScore(), convey.ShouldEqual, 0)

		convey.Convey("When starting again", func() {
			next := e.Start(ctx)

			convey.Convey("Then the new session is fresh", func() {
				convey.So(next.Status, convey.ShouldEqual, game.StatusPlaying)
				convey.So(next.Attempts, convey.ShouldEqual, 0)
				convey.So(next.History, convey.ShouldBeEmpty)
				convey.So(next.EndTime.IsZero(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When returning home", func() {
			home := e.ReturnHome(ctx)
			convey.So(home.Status, convey.ShouldEqual, game.StatusHome)
			convey.So(home.Attempts, convey.ShouldEqual, 15)
		})
	})
}

func TestEngine_TargetRange(t *testing.T) {
	convey.Convey("Given the default random source", t, func() {
		ctx := context.Background()
		cfg := game.Config{MinNum: 3, MaxNum: 6, MaxAttempts: 10}
		e, err := game.NewEngine(ctx, cfg, nil)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then every drawn target lies in range", func() {
			seen := map[int]bool{}
			for i := 0; i < 200; i++ {
				e.Start(ctx)
				for g := cfg.MinNum; g <= cfg.MaxNum; g++ {
					if s := e.SubmitGuess(ctx, strconv.Itoa(g)); s.Status == game.StatusWon {
						seen[s.Target] = true
						break
					}
				}
				convey.So(e.Snapshot().Status, convey.ShouldEqual, game.StatusWon)
			}
			for k := range seen {
				convey.So(k, convey.ShouldBeBetweenOrEqual, cfg.MinNum, cfg.MaxNum)
			}
		})
	})
}
