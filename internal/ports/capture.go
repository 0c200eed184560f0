package ports

import (
	"context"

	"github.com/plexlevi/webcorder/internal/domain"
)

// CaptureRequest describes one capture invocation
type CaptureRequest struct {
	MediaURL   string
	OutputPath string
	PageURL    string // sent as Referer
	SourceKey  string
}

// CaptureLauncher starts external capture processes
type CaptureLauncher interface {
	// Start launches the capture tool. It returns once the process is forked.
	Start(ctx context.Context, req CaptureRequest) (CaptureHandle, error)
}

// CaptureHandle controls one running capture process
type CaptureHandle interface {
	// Diagnostics returns the most recent stderr lines of the tool
	Diagnostics() []string

	// Done is closed once the process has exited
	Done() <-chan struct{}

	// Info returns process details
	Info() domain.CaptureInfo

	// IsHealthy reports whether the process runs and its output keeps growing
	IsHealthy() bool

	// RequestStop signals graceful termination and escalates to a kill after
	// the stop grace period. Idempotent and non-blocking.
	RequestStop()

	// Wait blocks until the process exits or ctx is done
	Wait(ctx context.Context) (domain.ExitReason, error)
}
