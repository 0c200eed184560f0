package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ActionDispatcher maps key definitions to UI messages
type ActionDispatcher struct {
	sourceKey string
}

// NewActionDispatcher creates a new action dispatcher.
// sourceKey is empty when no source is selected.
func NewActionDispatcher(sourceKey string) *ActionDispatcher {
	return &ActionDispatcher{sourceKey: sourceKey}
}

// Dispatch returns the message for def, or nil if it cannot be dispatched
func (d *ActionDispatcher) Dispatch(def KeyDefinition) tea.Msg {
	if def.Msg == nil {
		return nil
	}

	if sourceMsg, ok := def.Msg.(SourceAwareMsg); ok {
		if d.sourceKey == "" {
			return nil
		}
		return sourceMsg.WithSource(d.sourceKey)
	}

	return def.Msg
}
