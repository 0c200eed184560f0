package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/plexlevi/webcorder/internal/domain"
)

// Main UI styles
var (
	HelpLabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HelpShortcutStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)
)

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// Help screen styles
var (
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	HelpGroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHelpGroup).
			MarginTop(1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Width(16)
)

// Table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSubtle).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorMuted).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Background(ColorSelected).
				Bold(true)
)

var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// StateColor returns the color used for a source state
func StateColor(state domain.SourceState) Color {
	switch state {
	case domain.StateChecking:
		return ColorChecking
	case domain.StateFailed:
		return ColorFailed
	case domain.StateLiveStarting:
		return ColorStarting
	case domain.StateOffline:
		return ColorOffline
	case domain.StateRecording:
		return ColorRecording
	case domain.StateStopping:
		return ColorStopping
	default:
		return ColorIdle
	}
}

// StateStyle returns the style for a source state label
func StateStyle(state domain.SourceState) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(StateColor(state))
	if state == domain.StateRecording {
		style = style.Bold(true)
	}
	return style
}
