package domain

import "time"

// CaptureInfo describes the external process backing a session
type CaptureInfo struct {
	ExitCode    *int
	LastProbeAt time.Time
	PID         int
	StartedAt   time.Time
}

// ExitReason describes how a capture process terminated
type ExitReason struct {
	BytesWritten  int64
	Code          int
	Duration      time.Duration
	Err           error
	Escalated     bool // graceful stop timed out and the process was killed
	StopRequested bool
}

// Crashed reports whether the process ended abnormally on its own
func (r ExitReason) Crashed() bool {
	if r.StopRequested {
		return false
	}
	return r.Code != 0 || r.Err != nil
}
