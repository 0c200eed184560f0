package domain

// SourceState is the state of a source's monitor
type SourceState string

const (
	StateIdle         SourceState = "idle"
	StateChecking     SourceState = "checking"
	StateOffline      SourceState = "offline"
	StateLiveStarting SourceState = "live-starting"
	StateRecording    SourceState = "recording"
	StateStopping     SourceState = "stopping"
	StateFailed       SourceState = "failed"
)

// Status symbols (Unicode)
const (
	SymbolChecking  = "◌"
	SymbolFailed    = "✗"
	SymbolIdle      = "○"
	SymbolOffline   = "·"
	SymbolRecording = "●" // Red - capture running
	SymbolStarting  = "◐"
	SymbolStopping  = "◑"
)

// transitions lists the allowed target states for every state.
// Anything not listed is an invalid transition.
var transitions = map[SourceState][]SourceState{
	StateIdle:         {StateChecking},
	StateChecking:     {StateOffline, StateLiveStarting, StateIdle},
	StateOffline:      {StateChecking, StateIdle},
	StateLiveStarting: {StateRecording, StateFailed, StateStopping},
	StateRecording:    {StateStopping},
	StateStopping:     {StateIdle, StateFailed},
	StateFailed:       {StateIdle},
}

// AllStates returns every state in display order
func AllStates() []SourceState {
	return []SourceState{
		StateRecording,
		StateLiveStarting,
		StateStopping,
		StateChecking,
		StateOffline,
		StateFailed,
		StateIdle,
	}
}

// Valid reports whether s is one of the known states
func (s SourceState) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether moving from s to next is allowed
func (s SourceState) CanTransition(next SourceState) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HasSession reports whether a session may be active in this state
func (s SourceState) HasSession() bool {
	switch s {
	case StateLiveStarting, StateRecording, StateStopping:
		return true
	default:
		return false
	}
}

// Symbol returns the status symbol for the state
func (s SourceState) Symbol() string {
	switch s {
	case StateChecking:
		return SymbolChecking
	case StateOffline:
		return SymbolOffline
	case StateLiveStarting:
		return SymbolStarting
	case StateRecording:
		return SymbolRecording
	case StateStopping:
		return SymbolStopping
	case StateFailed:
		return SymbolFailed
	default:
		return SymbolIdle
	}
}
