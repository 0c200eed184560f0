package ui

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plexlevi/webcorder/internal/domain"
)

// KeyDefinition defines the metadata for a key binding
type KeyDefinition struct {
	Defaults []string
	Help     string  // falls back to the domain action description
	Msg      tea.Msg // Prototype message for dispatch (nil if not dispatchable)
	Name     string
}

// AllKeyDefinitions contains all dashboard key bindings.
// Names of source actions match domain.Actions.
var AllKeyDefinitions = []KeyDefinition{
	// Application keys
	{Name: "force_quit", Defaults: []string{"ctrl+c"}, Help: "stop all recordings and exit now"},
	{Name: "help", Defaults: []string{"h", "?"}, Msg: ShowHelpMsg{}},
	{Name: "quit", Defaults: []string{"q"}, Msg: QuitMsg{}},

	// Navigation keys
	{Name: "down", Defaults: []string{"down", "j"}, Help: "select next source"},
	{Name: "up", Defaults: []string{"up", "k"}, Help: "select previous source"},

	// Source actions
	{Name: "resume_recording", Defaults: []string{"r"}, Msg: ResumeRecordingMsg{}},
	{Name: "stop_recording", Defaults: []string{"s"}, Msg: StopRecordingMsg{}},
	{Name: "toggle_autorecord", Defaults: []string{"a"}, Msg: ToggleAutorecordMsg{}},
}

var (
	keyDefinitionsMap     map[string]KeyDefinition
	keyDefinitionsMapOnce sync.Once

	validKeyNames     []string
	validKeyNamesOnce sync.Once
)

// GetKeyDefinition returns the definition for a key by name.
// Returns nil if not found.
func GetKeyDefinition(name string) *KeyDefinition {
	keyDefinitionsMapOnce.Do(func() {
		keyDefinitionsMap = make(map[string]KeyDefinition, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			if def.Help == "" {
				if action := domain.GetActionByName(def.Name); action != nil {
					def.Help = action.Description
				}
			}
			keyDefinitionsMap[def.Name] = def
		}
	})
	if def, ok := keyDefinitionsMap[name]; ok {
		return &def
	}
	return nil
}

// GetValidKeyNames returns all key binding names in sorted order
func GetValidKeyNames() []string {
	validKeyNamesOnce.Do(func() {
		validKeyNames = make([]string, len(AllKeyDefinitions))
		for i, def := range AllKeyDefinitions {
			validKeyNames[i] = def.Name
		}
		sort.Strings(validKeyNames)
	})
	return validKeyNames
}
