package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary = lipgloss.Color("#13b6ec")
	BgDark  = lipgloss.Color("#101d22")
	Surface = lipgloss.Color("#1a2a30")
	Danger  = lipgloss.Color("#ef4444")
	Success = lipgloss.Color("#10b981")
	Warning = lipgloss.Color("#f59e0b")
	White   = lipgloss.Color("#ffffff")
	Cyan    = lipgloss.Color("#00f2ff")
	Dim     = lipgloss.Color("#5b6b70")

	App = lipgloss.NewStyle().
		Background(BgDark).
		Foreground(White).
		Padding(1, 2)

	Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface).
		Padding(0, 2)

	PanelHot = Panel.BorderForeground(Primary)

	Title  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Label  = lipgloss.NewStyle().Foreground(Dim)
	Value  = lipgloss.NewStyle().Foreground(White).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Dim)
	Good   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Bad    = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	Record = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	Latest = lipgloss.NewStyle().Foreground(Primary).Bold(true)
)

// confettiColors match the burst used on a win.
var confettiColors = []lipgloss.Color{Primary, White, Cyan}
