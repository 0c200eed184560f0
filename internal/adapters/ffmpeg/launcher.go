package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/plexlevi/webcorder/internal/adapters/process"
	"github.com/plexlevi/webcorder/internal/config"
	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/logging"
	"github.com/plexlevi/webcorder/internal/ports"
)

// DefaultBinary is looked up in PATH when no capture tool is configured
const DefaultBinary = "ffmpeg"

// DefaultDiagnosticsSize is how many stderr lines a handle keeps
const DefaultDiagnosticsSize = 50

// Launcher starts ffmpeg processes
type Launcher struct {
	binary     string
	diagSize   int
	newCommand func(name string, args ...string) *exec.Cmd
	runtime    *config.Runtime
}

// Verify interface compliance at compile time
var _ ports.CaptureLauncher = (*Launcher)(nil)

// NewLauncher creates a Launcher. Timing comes from rt on every start so
// reloaded settings apply to the next session.
func NewLauncher(binary string, rt *config.Runtime) *Launcher {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Launcher{
		binary:     binary,
		diagSize:   DefaultDiagnosticsSize,
		newCommand: exec.Command,
		runtime:    rt,
	}
}

// CheckAvailable verifies that the binary runs
func (l *Launcher) CheckAvailable(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, l.binary, "-version")
	output, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrCaptureToolMissing, l.binary, err)
	}
	if !strings.Contains(string(output), "ffmpeg version") {
		return fmt.Errorf("%w: %s does not look like ffmpeg", domain.ErrCaptureToolMissing, l.binary)
	}
	return nil
}

// Start launches ffmpeg for req. The process is not bound to ctx: it runs
// until RequestStop is called or it exits on its own.
func (l *Launcher) Start(ctx context.Context, req ports.CaptureRequest) (ports.CaptureHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args := BuildArgs(req)
	cmd := l.newCommand(l.binary, args...)
	process.Isolate(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCaptureStart, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCaptureStart, err)
	}

	logging.Logger.Debug("Starting capture", "source", req.SourceKey, "binary", l.binary, "args", args)
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w: %w", domain.ErrCaptureStart, domain.ErrCaptureToolMissing, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrCaptureStart, err)
	}

	tun := l.runtime.Load()
	h := newHandle(cmd, stdin, req, handleTiming{
		killTimeout:   tun.KillTimeout,
		probeInterval: tun.ProbeInterval,
		stallTimeout:  tun.StallTimeout,
		stopGrace:     tun.StopGrace,
	}, l.diagSize)
	h.run(stderr)

	logging.Logger.Info("Capture started",
		"source", req.SourceKey,
		"pid", cmd.Process.Pid,
		"output", req.OutputPath,
	)
	return h, nil
}
