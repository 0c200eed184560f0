package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SourceAwareMsg is implemented by messages that act on the selected source
type SourceAwareMsg interface {
	WithSource(key string) tea.Msg
}

// QuitMsg requests leaving the dashboard
type QuitMsg struct{}

// ShowHelpMsg requests showing the help screen
type ShowHelpMsg struct{}

// ResumeRecordingMsg lifts a user stop on a source
type ResumeRecordingMsg struct {
	Key string
}

func (m ResumeRecordingMsg) WithSource(key string) tea.Msg {
	return ResumeRecordingMsg{Key: key}
}

// StopRecordingMsg stops the current recording of a source
type StopRecordingMsg struct {
	Key string
}

func (m StopRecordingMsg) WithSource(key string) tea.Msg {
	return StopRecordingMsg{Key: key}
}

// ToggleAutorecordMsg watches or unwatches a source
type ToggleAutorecordMsg struct {
	Key string
}

func (m ToggleAutorecordMsg) WithSource(key string) tea.Msg {
	return ToggleAutorecordMsg{Key: key}
}

// tickMsg triggers a status refresh
type tickMsg time.Time

// actionResultMsg reports the outcome of an action run off the UI loop
type actionResultMsg struct {
	err  error
	info string
}
