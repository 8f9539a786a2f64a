package report

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the renderers.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Good    lipgloss.Style
	Fair    lipgloss.Style
	Poor    lipgloss.Style
	Border  lipgloss.Color
}

// DefaultStyles returns the styles used by the CLI.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")).MarginTop(1),
		Label:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#2563EB")),
		Good:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#16A34A")),
		Fair:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CA8A04")),
		Poor:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DC2626")),
		Border:  lipgloss.Color("#45475A"),
	}
}

func (s Styles) rating(r float64) lipgloss.Style {
	switch {
	case r >= 8:
		return s.Good
	case r >= 6:
		return s.Fair
	default:
		return s.Poor
	}
}
