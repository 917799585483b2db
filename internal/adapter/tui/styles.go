package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#8BC34A"}
	muted   = lipgloss.AdaptiveColor{Light: "#9aa3ad", Dark: "#5c6b82"}
	border  = lipgloss.AdaptiveColor{Light: "#dce0e5", Dark: "#2a3850"}
	success = lipgloss.Color("#2e7d32")
	idle    = lipgloss.AdaptiveColor{Light: "#424242", Dark: "#bdbdbd"}
)

// Styles holds the lipgloss styles for the panel.
type Styles struct {
	Title       lipgloss.Style
	Section     lipgloss.Style
	Box         lipgloss.Style
	Key         lipgloss.Style
	Label       lipgloss.Style
	GateLabel   lipgloss.Style
	Gate        lipgloss.Style
	LampOn      lipgloss.Style
	LampOff     lipgloss.Style
	ReminderOn  lipgloss.Style
	ReminderOff lipgloss.Style
}

// DefaultStyles returns the panel styles.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Section: lipgloss.NewStyle().Bold(true).Foreground(muted),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Key:         lipgloss.NewStyle().Foreground(muted),
		Label:       lipgloss.NewStyle().Width(14),
		GateLabel:   lipgloss.NewStyle().Width(42),
		Gate:        lipgloss.NewStyle().Width(5).Foreground(muted),
		LampOn:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		LampOff:     lipgloss.NewStyle().Foreground(muted),
		ReminderOn:  lipgloss.NewStyle().Bold(true).Foreground(success),
		ReminderOff: lipgloss.NewStyle().Foreground(idle),
	}
}
