package domain

// Action represents a user-invocable dashboard action.
type Action struct {
	Description    string
	Name           string
	RequiresSource bool
}

// Actions is the canonical registry of all available actions.
// Sorted alphabetically by Name.
var Actions = []Action{
	{Name: "help", Description: "Show keyboard shortcuts", RequiresSource: false},
	{Name: "quit", Description: "Stop all recordings and exit", RequiresSource: false},
	{Name: "resume_recording", Description: "Allow recording again while the source is live", RequiresSource: true},
	{Name: "stop_recording", Description: "Stop the current recording", RequiresSource: true},
	{Name: "toggle_autorecord", Description: "Watch or unwatch the selected source", RequiresSource: true},
}

// GetActionByName returns an action by its name, or nil if not found.
func GetActionByName(name string) *Action {
	for i := range Actions {
		if Actions[i].Name == name {
			return &Actions[i]
		}
	}
	return nil
}
