package domain

import "time"

// SourceStatus is a point-in-time view of one watched source
type SourceStatus struct {
	CrashCount       int
	Key              string
	LastError        string
	LastPolledAt     time.Time
	Live             bool
	OutputPath       string
	ResolveFailures  int
	SessionID        string
	SessionStartTime *time.Time
	State            SourceState
	Suppressed       bool // user stopped the recording; waits for offline
	UpdatedAt        time.Time
}

// HasSession reports whether the status carries an active session
func (s SourceStatus) HasSession() bool {
	return s.SessionStartTime != nil
}

// StatusCounts aggregates a snapshot by state
type StatusCounts map[SourceState]int

// CountStates counts the snapshot entries per state
func CountStates(snapshot map[string]SourceStatus) StatusCounts {
	counts := make(StatusCounts)
	for _, st := range snapshot {
		counts[st.State]++
	}
	return counts
}
