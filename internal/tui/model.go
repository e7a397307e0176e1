// Package tui is the Bubble Tea front end for the number puzzle.
//
// The model forwards key presses to the engine as intents and renders the
// snapshot it gets back. The only state it keeps of its own is the input
// buffer, the window size and the confetti animation.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/numpuzzle/internal/game"
)

const (
	maxInputLen    = 9
	confettiFrames = 12
	confettiTick   = 80 * time.Millisecond
)

// Engine is the slice of *game.Engine the view needs.
type Engine interface {
	Start(ctx context.Context) game.Snapshot
	SubmitGuess(ctx context.Context, raw string) game.Snapshot
	ReturnHome(ctx context.Context) game.Snapshot
	Snapshot() game.Snapshot
}

type celebrateMsg struct{ snap game.Snapshot }

type confettiMsg struct{}

// Celebrations returns a channel for Model and a hook for game.WithCelebration.
// The hook drops the signal if the previous one has not been consumed.
func Celebrations() (<-chan game.Snapshot, func(game.Snapshot)) {
	ch := make(chan game.Snapshot, 1)
	return ch, func(s game.Snapshot) {
		select {
		case ch <- s:
		default:
		}
	}
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx          context.Context
	engine       Engine
	celebrations <-chan game.Snapshot

	snap     game.Snapshot
	input    string
	confetti int
	width    int
	quitting bool
}

// New builds a model showing the engine's current snapshot.
// celebrations may be nil.
func New(ctx context.Context, engine Engine, celebrations <-chan game.Snapshot) Model {
	return Model{
		ctx:          ctx,
		engine:       engine,
		celebrations: celebrations,
		snap:         engine.Snapshot(),
	}
}

// Snapshot returns the last snapshot rendered.
func (m Model) Snapshot() game.Snapshot { return m.snap }

// Input returns the pending guess text.
func (m Model) Input() string { return m.input }

// Celebrating reports whether the confetti animation is running.
func (m Model) Celebrating() bool { return m.confetti > 0 }

func (m Model) Init() tea.Cmd {
	return m.waitForCelebration()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case celebrateMsg:
		m.confetti = confettiFrames
		return m, tea.Batch(tickConfetti(), m.waitForCelebration())

	case confettiMsg:
		if m.confetti > 0 {
			m.confetti--
		}
		if m.confetti > 0 {
			return m, tickConfetti()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.snap.Status {
		case game.StatusHome:
			return m.updateHome(msg)
		case game.StatusPlaying:
			return m.updatePlaying(msg)
		case game.StatusWon, game.StatusGameOver:
			return m.updateResult(msg)
		}
	}
	return m, nil
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "s", " ":
		m.snap = m.engine.Start(m.ctx)
		m.input = ""
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.input == "" {
			return m, nil
		}
		m.snap = m.engine.SubmitGuess(m.ctx, m.input)
		m.input = ""
	case "backspace":
		if n := len(m.input); n > 0 {
			m.input = m.input[:n-1]
		}
	case "esc":
		m.snap = m.engine.ReturnHome(m.ctx)
		m.input = ""
	default:
		if msg.Type != tea.KeyRunes {
			return m, nil
		}
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9' || r == '-') && len(m.input) < maxInputLen {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		m.snap = m.engine.Start(m.ctx)
		m.input = ""
		m.confetti = 0
	case "h", "esc":
		m.snap = m.engine.ReturnHome(m.ctx)
		m.confetti = 0
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) waitForCelebration() tea.Cmd {
	if m.celebrations == nil {
		return nil
	}
	ch := m.celebrations
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return celebrateMsg{snap: snap}
	}
}

func tickConfetti() tea.Cmd {
	return tea.Tick(confettiTick, func(time.Time) tea.Msg { return confettiMsg{} })
}

// Run starts a full-screen program around engine.
func Run(ctx context.Context, engine Engine, celebrations <-chan game.Snapshot) error {
	p := tea.NewProgram(New(ctx, engine, celebrations), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
