package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/plexlevi/webcorder/internal/adapters/process"
	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/logging"
	"github.com/plexlevi/webcorder/internal/ports"
)

// Handle controls one running ffmpeg process
type Handle struct {
	cmd        *exec.Cmd
	diag       *ring
	outputPath string
	sourceKey  string
	startedAt  time.Time
	stdin      io.WriteCloser
	timing     handleTiming

	done          chan struct{}
	escalated     atomic.Bool
	stopOnce      sync.Once
	stopRequested atomic.Bool

	mu         sync.Mutex
	alive      bool
	exit       domain.ExitReason
	exitCode   *int
	lastGrowth time.Time
	lastProbe  time.Time
	lastSize   int64
}

type handleTiming struct {
	killTimeout   time.Duration
	probeInterval time.Duration
	stallTimeout  time.Duration
	stopGrace     time.Duration
}

var _ ports.CaptureHandle = (*Handle)(nil)

func newHandle(cmd *exec.Cmd, stdin io.WriteCloser, req ports.CaptureRequest, timing handleTiming, diagSize int) *Handle {
	now := time.Now()
	return &Handle{
		alive:      true,
		cmd:        cmd,
		diag:       newRing(diagSize),
		done:       make(chan struct{}),
		lastGrowth: now,
		outputPath: req.OutputPath,
		sourceKey:  req.SourceKey,
		startedAt:  now,
		stdin:      stdin,
		timing:     timing,
	}
}

// run starts the background goroutines. stderr must be the pipe of h.cmd.
func (h *Handle) run(stderr io.Reader) {
	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		h.readStderr(stderr)
	}()
	go h.wait(stderrDone)
	go h.probeLoop()
}

func (h *Handle) readStderr(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if isNoise(line) {
			continue
		}
		h.diag.add(line)
		logging.Logger.Warn("ffmpeg", "source", h.sourceKey, "line", line)
	}
}

// wait reaps the process once stderr is drained, as exec.Cmd requires
func (h *Handle) wait(stderrDone <-chan struct{}) {
	<-stderrDone
	waitErr := h.cmd.Wait()

	code := h.cmd.ProcessState.ExitCode()
	size := fileSize(h.outputPath)

	reason := domain.ExitReason{
		BytesWritten:  size,
		Code:          code,
		Duration:      time.Since(h.startedAt),
		Escalated:     h.escalated.Load(),
		StopRequested: h.stopRequested.Load(),
	}

	var errs []error
	if waitErr != nil && !reason.StopRequested {
		if last := h.diag.last(); last != "" {
			errs = append(errs, fmt.Errorf("ffmpeg exited with code %d: %s", code, last))
		} else {
			errs = append(errs, fmt.Errorf("ffmpeg exited with code %d: %w", code, waitErr))
		}
	}
	if size == 0 {
		errs = append(errs, domain.ErrEmptyOutput)
	}
	reason.Err = errors.Join(errs...)

	h.mu.Lock()
	h.alive = false
	h.exit = reason
	h.exitCode = &code
	h.mu.Unlock()

	logging.Logger.Info("Capture process exited",
		"source", h.sourceKey,
		"code", code,
		"bytes", size,
		"duration", reason.Duration,
		"escalated", reason.Escalated,
		"stop_requested", reason.StopRequested,
	)

	close(h.done)
}

func (h *Handle) probeLoop() {
	ticker := time.NewTicker(h.timing.probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.probe()
		}
	}
}

// probe samples process liveness and output growth
func (h *Handle) probe() {
	alive := process.IsAlive(h.cmd.Process.Pid)
	size := fileSize(h.outputPath)
	now := time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.exitCode != nil {
		return
	}
	h.alive = alive
	h.lastProbe = now
	if size > h.lastSize {
		h.lastSize = size
		h.lastGrowth = now
	}
}

// Diagnostics returns the most recent stderr lines of ffmpeg
func (h *Handle) Diagnostics() []string {
	return h.diag.snapshot()
}

// Done is closed once the process has exited
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Info returns process details
func (h *Handle) Info() domain.CaptureInfo {
	h.mu.Lock()
	defer h.mu.Unlock()

	return domain.CaptureInfo{
		ExitCode:    h.exitCode,
		LastProbeAt: h.lastProbe,
		PID:         h.cmd.Process.Pid,
		StartedAt:   h.startedAt,
	}
}

// IsHealthy reports whether ffmpeg runs and its output grew within the
// stall timeout
func (h *Handle) IsHealthy() bool {
	select {
	case <-h.done:
		return false
	default:
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.alive && h.lastSize > 0 && time.Since(h.lastGrowth) <= h.timing.stallTimeout
}

// RequestStop asks ffmpeg to finish the file and kills it after the stop
// grace period. Safe to call repeatedly and from any goroutine.
func (h *Handle) RequestStop() {
	h.stopOnce.Do(func() {
		h.stopRequested.Store(true)
		go h.stop()
	})
}

func (h *Handle) stop() {
	select {
	case <-h.done:
		return
	default:
	}

	logging.Logger.Info("Stopping capture", "source", h.sourceKey, "pid", h.cmd.Process.Pid)

	// Phase one: ffmpeg treats "q" on stdin as a request to finalize
	if _, err := io.WriteString(h.stdin, "q\n"); err != nil {
		logging.Logger.Debug("Failed to write quit command", "source", h.sourceKey, "error", err)
	}
	h.stdin.Close()
	if err := process.Interrupt(h.cmd.Process); err != nil {
		logging.Logger.Debug("Failed to interrupt capture", "source", h.sourceKey, "error", err)
	}

	select {
	case <-h.done:
		return
	case <-time.After(h.timing.stopGrace):
	}

	// Phase two
	h.escalated.Store(true)
	logging.Logger.Warn("Capture ignored graceful stop, killing",
		"source", h.sourceKey,
		"pid", h.cmd.Process.Pid,
		"grace", h.timing.stopGrace,
	)
	if err := process.Kill(h.cmd.Process); err != nil {
		logging.Logger.Error("Failed to kill capture", "source", h.sourceKey, "error", err)
	}

	select {
	case <-h.done:
	case <-time.After(h.timing.killTimeout):
		logging.Logger.Error("Capture still running after kill", "source", h.sourceKey, "pid", h.cmd.Process.Pid)
	}
}

// Wait blocks until the process exits or ctx is done
func (h *Handle) Wait(ctx context.Context) (domain.ExitReason, error) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.exit, nil
	case <-ctx.Done():
		return domain.ExitReason{}, ctx.Err()
	}
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
