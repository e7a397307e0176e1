package game_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/robalobadob/numpuzzle/internal/game"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func started(target int) game.Session {
	return game.Reduce(game.DefaultConfig(), 0, game.Session{Status: game.StatusHome}, game.Event{
		Intent: game.IntentStart, Target: target, At: t0,
	})
}

func guess(cfg game.Config, best int, s game.Session, raw string, at time.Time) game.Session {
	return game.Reduce(cfg, best, s, game.Event{Intent: game.IntentGuess, Raw: raw, At: at})
}

func TestReduce_Start(t *testing.T) {
	convey.Convey("Given a finished session", t, func() {
		cfg := game.DefaultConfig()
		prev := game.Session{
			Target: 9, Attempts: 4, History: []int{1, 2, 3, 9}, Status: game.StatusWon,
			EndTime: t0, Score: 9000, NewRecord: true, Feedback: game.FeedbackWon,
		}

		convey.Convey("When start is reduced", func() {
			next := game.Reduce(cfg, 0, prev, game.Event{Intent: game.IntentStart, Target: 77, At: t0.Add(time.Minute)})

			convey.Convey("Then counters, history and markers are reset", func() {
				convey.So(next.Target, convey.ShouldEqual, 77)
				convey.So(next.Attempts, convey.ShouldEqual, 0)
				convey.So(next.History, convey.ShouldBeEmpty)
				convey.So(next.LastGuess, convey.ShouldBeNil)
				convey.So(next.Status, convey.ShouldEqual, game.StatusPlaying)
				convey.So(next.Feedback, convey.ShouldEqual, game.FeedbackWaiting)
				convey.So(next.StartTime, convey.ShouldEqual, t0.Add(time.Minute))
				convey.So(next.EndTime.IsZero(), convey.ShouldBeTrue)
				convey.So(next.Score, convey.ShouldEqual, 0)
				convey.So(next.NewRecord, convey.ShouldBeFalse)
			})
		})
	})
}

func TestReduce_ScenarioA(t *testing.T) {
	convey.Convey("Given target 42 in the default config", t, func() {
		cfg := game.DefaultConfig()
		s := started(42)

		convey.Convey("When guessing 50, 25, 42", func() {
			s1 := guess(cfg, 0, s, "50", t0.Add(time.Second))
			s2 := guess(cfg, 0, s1, "25", t0.Add(2*time.Second))
			s3 := guess(cfg, 0, s2, "42", t0.Add(65*time.Second))

			convey.Convey("Then the first guess hints lower", func() {
				convey.So(s1.Feedback, convey.ShouldEqual, game.FeedbackLower)
				convey.So(s1.Status, convey.ShouldEqual, game.StatusPlaying)
				convey.So(s1.Attempts, convey.ShouldEqual, 1)
			})
			convey.Convey("Then the second guess hints higher", func() {
				convey.So(s2.Feedback, convey.ShouldEqual, game.FeedbackHigher)
				convey.So(s2.Attempts, convey.ShouldEqual, 2)
				convey.So(s2.History, convey.ShouldResemble, []int{25, 50})
			})
			convey.Convey("Then the third guess wins with 9250", func() {
				convey.So(s3.Status, convey.ShouldEqual, game.StatusWon)
				convey.So(s3.Attempts, convey.ShouldEqual, 3)
				convey.So(s3.Score, convey.ShouldEqual, 9250)
				convey.So(s3.Feedback, convey.ShouldEqual, game.FeedbackWon)
				convey.So(s3.EndTime, convey.ShouldEqual, t0.Add(65*time.Second))
				convey.So(*s3.LastGuess, convey.ShouldEqual, 42)
				convey.So(s3.History, convey.ShouldResemble, []int{42, 25, 50})
			})
			convey.Convey("Then earlier states are not mutated", func() {
				convey.So(s1.History, convey.ShouldResemble, []int{50})
				convey.So(s.History, convey.ShouldBeEmpty)
			})
		})
	})
}

func TestReduce_ScenarioB(t *testing.T) {
	convey.Convey("Given target 7 and fifteen wrong guesses", t, func() {
		cfg := game.DefaultConfig()
		s := started(7)
		for i := 0; i < 14; i++ {
			s = guess(cfg, 0, s, "50", t0)
			convey.So(s.Status, convey.ShouldEqual, game.StatusPlaying)
			convey.So(s.EndTime.IsZero(), convey.ShouldBeTrue)
		}
		s = guess(cfg, 0, s, "8", t0.Add(time.Minute))

		convey.Convey("Then the fifteenth guess ends the game", func() {
			convey.So(s.Attempts, convey.ShouldEqual, 15)
			convey.So(s.Status, convey.ShouldEqual, game.StatusGameOver)
			convey.So(s.Feedback, convey.ShouldEqual, game.FeedbackGameOver)
			convey.So(s.EndTime, convey.ShouldEqual, t0.Add(time.Minute))
			convey.So(s.Score, convey.ShouldEqual, 0)
			convey.So(s.NewRecord, convey.ShouldBeFalse)
		})

		convey.Convey("Then further guesses are ignored", func() {
			after := guess(cfg, 0, s, "7", t0.Add(2*time.Minute))
			convey.So(after, convey.ShouldResemble, s)
		})
	})
}

func TestReduce_ScenarioC(t *testing.T) {
	convey.Convey("Given a playing session with one attempt", t, func() {
		cfg := game.DefaultConfig()
		s := guess(cfg, 0, started(42), "10", t0)

		for _, raw := range []string{"abc", "150", "0", "", "4.5", "-3"} {
			convey.Convey("When submitting "+strconv.Quote(raw), func() {
				next := guess(cfg, 0, s, raw, t0.Add(time.Second))

				convey.Convey("Then only the feedback changes", func() {
					convey.So(next.Feedback, convey.ShouldEqual, "SYSTEM ERROR: Value must be between 1-100")
					convey.So(next.Attempts, convey.ShouldEqual, 1)
					convey.So(next.History, convey.ShouldResemble, []int{10})
					convey.So(*next.LastGuess, convey.ShouldEqual, 10)
					convey.So(next.Status, convey.ShouldEqual, game.StatusPlaying)
				})
			})
		}

		convey.Convey("When submitting the bounds with surrounding spaces", func() {
			low := guess(cfg, 0, s, " 1 ", t0)
			high := guess(cfg, 0, s, "100\n", t0)

			convey.Convey("Then both are accepted", func() {
				convey.So(low.Attempts, convey.ShouldEqual, 2)
				convey.So(high.Attempts, convey.ShouldEqual, 2)
			})
		})
	})
}

func TestReduce_WinOnLastAttempt(t *testing.T) {
	convey.Convey("Given a budget of three attempts", t, func() {
		cfg := game.Config{MinNum: 1, MaxNum: 10, MaxAttempts: 3}
		s := game.Reduce(cfg, 0, game.Session{}, game.Event{Intent: game.IntentStart, Target: 5, At: t0})
		s = guess(cfg, 0, s, "1", t0)
		s = guess(cfg, 0, s, "2", t0)

		convey.Convey("When the final attempt is correct", func() {
			s = guess(cfg, 0, s, "5", t0)

			convey.Convey("Then the session is won, not lost", func() {
				convey.So(s.Status, convey.ShouldEqual, game.StatusWon)
				convey.So(s.Attempts, convey.ShouldEqual, 3)
				convey.So(s.Score, convey.ShouldEqual, 9250)
			})
		})
	})
}

func TestReduce_ReturnHome(t *testing.T) {
	convey.Convey("Given a playing session", t, func() {
		cfg := game.DefaultConfig()
		s := guess(cfg, 0, started(42), "30", t0)

		convey.Convey("When returning home", func() {
			next := game.Reduce(cfg, 0, s, game.Event{Intent: game.IntentReturnHome, At: t0})

			convey.Convey("Then only the status changes", func() {
				convey.So(next.Status, convey.ShouldEqual, game.StatusHome)
				convey.So(next.Attempts, convey.ShouldEqual, s.Attempts)
				convey.So(next.History, convey.ShouldResemble, s.History)
				convey.So(next.Target, convey.ShouldEqual, s.Target)
			})

			convey.Convey("Then guesses from home are ignored", func() {
				convey.So(guess(cfg, 0, next, "42", t0), convey.ShouldResemble, next)
			})
		})
	})
}

func TestReduce_NewRecordFlag(t *testing.T) {
	convey.Convey("Given a session won in three attempts", t, func() {
		cfg := game.DefaultConfig()
		win := func(best int) game.Session {
			s := started(42)
			s = guess(cfg, best, s, "1", t0)
			s = guess(cfg, best, s, "2", t0)
			return guess(cfg, best, s, "42", t0)
		}

		convey.So(win(0).NewRecord, convey.ShouldBeTrue)
		convey.So(win(9250).NewRecord, convey.ShouldBeTrue)
		convey.So(win(9500).NewRecord, convey.ShouldBeFalse)
	})
}

func TestParseGuess(t *testing.T) {
	convey.Convey("ParseGuess wraps ErrInvalidGuess", t, func() {
		_, err := game.ParseGuess(game.DefaultConfig(), "nope")
		convey.So(errors.Is(err, game.ErrInvalidGuess), convey.ShouldBeTrue)

		_, err = game.ParseGuess(game.DefaultConfig(), "101")
		convey.So(errors.Is(err, game.ErrInvalidGuess), convey.ShouldBeTrue)

		n, err := game.ParseGuess(game.DefaultConfig(), "+7")
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, 7)
	})
}
