package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/robalobadob/numpuzzle/internal/game"
)

const progressWidth = 30

var printer = message.NewPrinter(language.English)

// formatPoints renders a score with thousands separators.
func formatPoints(n int) string { return printer.Sprintf("%d", n) }

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var body string
	switch m.snap.Status {
	case game.StatusPlaying:
		body = m.viewPlaying()
	case game.StatusWon, game.StatusGameOver:
		body = m.viewResult()
	default:
		body = m.viewHome()
	}
	return App.Render(body)
}

func (m Model) viewHome() string {
	lines := []string{
		Value.Render("NUM") + Title.Render("PUZZLE"),
		Muted.Render("NEURAL INTERFACE ACTIVE"),
		"",
		PanelHot.Render(Label.Render("Top Score Recalibrated") + "\n" + Value.Render(formatPoints(m.snap.HighScore))),
		"",
		Title.Render("[enter] Initialize Scan") + Muted.Render("   [q] quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewPlaying() string {
	s := m.snap
	feedback := s.Feedback
	if feedback == "" {
		feedback = game.IdlePrompt(game.Config{MinNum: s.MinNum, MaxNum: s.MaxNum})
	}

	input := m.input
	if input == "" {
		input = Muted.Render("?")
	}

	lines := []string{
		Label.Render("NEURAL LOAD ") + Value.Render(fmt.Sprintf("%d", s.Attempts)) +
			Muted.Render(fmt.Sprintf("/%d", s.MaxAttempts)),
		progressBar(s.Progress()),
		"",
		PanelHot.Render(Label.Render("AI FEEDBACK LOOP") + "\n" + feedback),
		"",
		Title.Render("> ") + Value.Render(input),
		"",
		Label.Render("LOG STACK TRACE"),
		historyLines(s.History),
		"",
		Muted.Render("[enter] execute decode   [esc] abort   [ctrl+c] quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewResult() string {
	s := m.snap
	won := s.Status == game.StatusWon

	var lines []string
	if m.confetti > 0 {
		lines = append(lines, confettiLine(m.confetti, m.lineWidth()))
	}
	lines = append(lines, Label.Render("LEVEL RESULT"))
	if won {
		lines = append(lines, Value.Render("LEVEL ")+Good.Render("CLEAR!"), Muted.Render("Fantastic Job!"))
		if s.NewRecord {
			lines = append(lines, Record.Render("★ New Record ★"))
		}
	} else {
		lines = append(lines, Value.Render("OUT OF ")+Bad.Render("LUCK!"), Muted.Render("Better luck next time"))
	}

	stats := []string{
		Label.Render("Target      ") + Value.Render(fmt.Sprintf("%d", s.Target)),
		Label.Render("Time Taken  ") + Value.Render(s.ElapsedClock()),
		Label.Render("Attempts    ") + Value.Render(fmt.Sprintf("%d", s.Attempts)),
		Label.Render("Total Score ") + Value.Render(formatPoints(s.Score)),
	}
	if won {
		stats = append(stats, Good.Render("+"+formatPoints(s.Score)))
	}
	lines = append(lines, "", Panel.Render(strings.Join(stats, "\n")), "",
		Title.Render("[r] Try Again")+Muted.Render("   [h] Home Menu   [q] quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) lineWidth() int {
	if m.width > 8 {
		return min(m.width-8, 60)
	}
	return 40
}

// progressBar draws the used share of the attempt budget.
func progressBar(frac float64) string {
	filled := int(frac*progressWidth + 0.5)
	filled = max(0, min(progressWidth, filled))
	return Title.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", progressWidth-filled))
}

// historyLines lists guesses newest first as "#N: value".
func historyLines(history []int) string {
	if len(history) == 0 {
		return Muted.Render("Awaiting data input...")
	}
	out := make([]string, len(history))
	for i, v := range history {
		entry := fmt.Sprintf("#%d: %d", len(history)-i, v)
		if i == 0 {
			out[i] = Latest.Render(entry)
		} else {
			out[i] = Muted.Render(entry)
		}
	}
	return strings.Join(out, "\n")
}

// confettiLine is one frame of the win burst.
func confettiLine(frame, width int) string {
	glyphs := []rune("*+•·✦")
	var b strings.Builder
	for i := 0; i < width; i++ {
		if (i*7+frame*3)%5 > 1 {
			b.WriteByte(' ')
			continue
		}
		g := string(glyphs[(i+frame)%len(glyphs)])
		c := confettiColors[(i+frame)%len(confettiColors)]
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render(g))
	}
	return b.String()
}
