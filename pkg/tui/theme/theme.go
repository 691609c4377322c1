// Package theme centralizes the lipgloss styles shared by every view.
package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
)

// Theme holds the style set for the active terminal background.
type Theme struct {
	Title     lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	Header    lipgloss.Style
	Selected  lipgloss.Style
	Faint     lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Frame     lipgloss.Style
	Status    lipgloss.Style
}

// New picks colors suited to the detected terminal background.
func New() Theme {
	accent := lipgloss.Color("212")
	faint := lipgloss.Color("240")
	if !termenv.HasDarkBackground() {
		accent = lipgloss.Color("162")
		faint = lipgloss.Color("245")
	}
	return Theme{
		Title:     lipgloss.NewStyle().Bold(true),
		TabActive: lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		TabIdle:   lipgloss.NewStyle().Foreground(faint),
		Header:    lipgloss.NewStyle().Bold(true).Underline(true),
		Selected:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Faint:     lipgloss.NewStyle().Foreground(faint),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		Status: lipgloss.NewStyle().Foreground(faint),
	}
}
