package cli

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title lipgloss.Style
	Faint lipgloss.Style
	Error lipgloss.Style
	OK    lipgloss.Style
	Card  lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title: lipgloss.NewStyle().Bold(true),
		Faint: lipgloss.NewStyle().Faint(true),
		Error: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		OK:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}
