// internal/console/console.go
//
// Line-oriented front end for plain terminals, pipes and scripts.
// Responsibilities:
//   - Read one command per line and forward it to the engine as an intent.
//   - Print the feedback line after each guess and a summary on WON/GAMEOVER.
//
// Commands: "start", "home", "quit" (or EOF). Any other line is a guess
// while a session is playing.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/numpuzzle/internal/game"
)

// Engine is the part of *game.Engine the console drives.
type Engine interface {
	Start(ctx context.Context) game.Snapshot
	SubmitGuess(ctx context.Context, raw string) game.Snapshot
	ReturnHome(ctx context.Context) game.Snapshot
	Snapshot() game.Snapshot
}

// Console binds an engine to a reader/writer pair.
type Console struct {
	engine Engine
	in     io.Reader
	out    io.Writer
}

func New(engine Engine, in io.Reader, out io.Writer) *Console {
	return &Console{engine: engine, in: in, out: out}
}

// Run processes lines until quit, EOF or ctx is done.
// A line that arrives after ctx is cancelled is never dispatched.
func (c *Console) Run(ctx context.Context) error {
	readCtx, stop := context.WithCancel(ctx)
	defer stop()
	lines, readErr := readLines(readCtx, c.in)
	c.home(c.engine.Snapshot())
	for {
		fmt.Fprint(c.out, c.prompt())
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				return <-readErr
			}
			line = l
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "quit", "exit", "q":
			return nil
		case "start", "s":
			snap := c.engine.Start(ctx)
			fmt.Fprintf(c.out, "%s (%d attempts)\n", game.IdlePrompt(rangeOf(snap)), snap.MaxAttempts)
			continue
		case "home", "h":
			c.home(c.engine.ReturnHome(ctx))
			continue
		}

		if c.engine.Snapshot().Status != game.StatusPlaying {
			fmt.Fprintln(c.out, "Type \"start\" to begin or \"quit\" to leave.")
			continue
		}
		snap := c.engine.SubmitGuess(ctx, line)
		fmt.Fprintln(c.out, snap.Feedback)
		if snap.Status.Terminal() {
			c.summary(snap)
		}
	}
}

// readLines scans r on its own goroutine. lines is closed at EOF, after
// which readErr yields the scanner error (nil on a clean EOF). Lines read
// after ctx is done are dropped.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()
	return lines, readErr
}

func (c *Console) prompt() string {
	snap := c.engine.Snapshot()
	if snap.Status == game.StatusPlaying {
		return fmt.Sprintf("[%d/%d] > ", snap.Attempts+1, snap.MaxAttempts)
	}
	return "> "
}

func (c *Console) home(snap game.Snapshot) {
	fmt.Fprintf(c.out, "NUM PUZZLE  high score %d\n", snap.HighScore)
	fmt.Fprintln(c.out, "Commands: start, home, quit")
}

func (c *Console) summary(snap game.Snapshot) {
	if snap.Status == game.StatusWon {
		fmt.Fprintln(c.out, "LEVEL CLEAR! Fantastic Job!")
		if snap.NewRecord {
			fmt.Fprintln(c.out, "New Record!")
		}
	} else {
		fmt.Fprintln(c.out, "OUT OF LUCK! Better luck next time")
	}
	fmt.Fprintf(c.out, "Target %d | Time %s | Attempts %d | Score %d\n",
		snap.Target, snap.ElapsedClock(), snap.Attempts, snap.Score)
	fmt.Fprintln(c.out, "Type \"start\" to try again or \"home\".")
}

func rangeOf(s game.Snapshot) game.Config {
	return game.Config{MinNum: s.MinNum, MaxNum: s.MaxNum, MaxAttempts: s.MaxAttempts}
}
