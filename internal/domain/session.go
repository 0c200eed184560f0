package domain

import "time"

// TerminationReason records why a session ended
type TerminationReason string

const (
	TerminationNone      TerminationReason = "none"
	TerminationNormal    TerminationReason = "normal"
	TerminationError     TerminationReason = "error"
	TerminationCancelled TerminationReason = "cancelled"
)

// Session is one live-to-offline recording episode of a source
type Session struct {
	BytesWritten int64
	EndedAt      *time.Time
	Error        string
	Escalated    bool
	ExitCode     *int
	ID           string
	MediaURL     string
	OutputPath   string
	SourceKey    string
	StartedAt    time.Time
	Termination  TerminationReason
}

// Active reports whether the session has not ended yet
func (s Session) Active() bool {
	return s.EndedAt == nil
}

// Duration returns how long the session ran, or has been running
func (s Session) Duration(now time.Time) time.Duration {
	if s.EndedAt != nil {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}

// SessionFilter narrows session listings
type SessionFilter struct {
	ActiveOnly bool
	Limit      int
	SourceKey  string
}
