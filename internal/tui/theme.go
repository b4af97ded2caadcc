package tui

import "github.com/charmbracelet/lipgloss"

var (
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")

	App = lipgloss.NewStyle().
		Foreground(Text).
		Padding(1, 2)

	Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Padding(1, 2).
		Width(64)

	Title    = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted    = lipgloss.NewStyle().Foreground(Subtext0)
	Hot      = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Option   = lipgloss.NewStyle().Foreground(Text)
	Cursor   = lipgloss.NewStyle().Foreground(Lavender).Bold(true)
	Right    = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Wrong    = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Disabled = lipgloss.NewStyle().Foreground(Surface1)
)
