package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap contains all dashboard shortcuts
type KeyMap struct {
	Down             key.Binding
	ForceQuit        key.Binding
	Help             key.Binding
	Quit             key.Binding
	ResumeRecording  key.Binding
	StopRecording    key.Binding
	ToggleAutorecord key.Binding
	Up               key.Binding
}

// NewKeyMap creates the default KeyMap
func NewKeyMap() KeyMap {
	return KeyMap{
		Down:             buildBinding("down"),
		ForceQuit:        buildBinding("force_quit"),
		Help:             buildBinding("help"),
		Quit:             buildBinding("quit"),
		ResumeRecording:  buildBinding("resume_recording"),
		StopRecording:    buildBinding("stop_recording"),
		ToggleAutorecord: buildBinding("toggle_autorecord"),
		Up:               buildBinding("up"),
	}
}

func buildBinding(name string) key.Binding {
	def := GetKeyDefinition(name)
	if def == nil {
		panic("unknown key definition: " + name)
	}
	return key.NewBinding(
		key.WithKeys(def.Defaults...),
		key.WithHelp(strings.Join(def.Defaults, "/"), def.Help),
	)
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.StopRecording,
		k.ResumeRecording,
		k.ToggleAutorecord,
		k.Help,
		k.Quit,
	}
}
