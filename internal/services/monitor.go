package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/plexlevi/webcorder/internal/config"
	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/logging"
	"github.com/plexlevi/webcorder/internal/ports"
)

// journalTimeout bounds journal writes made after the monitor was cancelled
const journalTimeout = 5 * time.Second

// MonitorDeps are the collaborators shared by all monitors
type MonitorDeps struct {
	Journal  ports.RecordingJournal // optional
	Launcher ports.CaptureLauncher
	Namer    ports.PathNamer
	Resolver ports.Resolver
	Runtime  *config.Runtime
}

// endCause says why a recording left the recording state
type endCause int

const (
	causeNone endCause = iota
	causeOffline
	causeUserStop
	causeCancelled
	causeExited
	causeStalled
)

func (c endCause) String() string {
	switch c {
	case causeOffline:
		return "offline"
	case causeUserStop:
		return "user-stop"
	case causeCancelled:
		return "cancelled"
	case causeExited:
		return "exited"
	case causeStalled:
		return "stalled"
	default:
		return "unknown"
	}
}

// Monitor drives one source through the recording state machine.
// Everything except Status, RequestStop and ResumeRecording runs on the
// goroutine calling Run.
type Monitor struct {
	deps   MonitorDeps
	source domain.Source

	resumeCh   chan struct{}
	status     atomic.Pointer[domain.SourceStatus]
	stopCh     chan struct{}
	suppressed atomic.Bool

	// Owned by the Run goroutine
	crashCount      int
	failureBackoff  *backoff.ExponentialBackOff
	lastError       string
	lastPolledAt    time.Time
	live            bool
	offlineSince    time.Time
	resolveBackoff  *backoff.ExponentialBackOff
	resolveFailures int
	session         *domain.Session
	state           domain.SourceState
	tunables        config.Tunables
}

// NewMonitor creates a Monitor in the idle state
func NewMonitor(source domain.Source, deps MonitorDeps) *Monitor {
	if deps.Journal == nil {
		deps.Journal = noopJournal{}
	}
	m := &Monitor{
		deps:     deps,
		resumeCh: make(chan struct{}, 1),
		source:   source,
		state:    domain.StateIdle,
		stopCh:   make(chan struct{}, 1),
	}
	m.publish()
	return m
}

// Key returns the key of the monitored source
func (m *Monitor) Key() string {
	return m.source.Key
}

// Status returns the last published status without blocking
func (m *Monitor) Status() domain.SourceStatus {
	return *m.status.Load()
}

// RequestStop ends the current recording, if any, and keeps the source from
// recording again until it has been seen offline or ResumeRecording is called
func (m *Monitor) RequestStop() {
	m.suppressed.Store(true)
	select {
	case m.stopCh <- struct{}{}:
	default:
	}
	logging.Logger.Info("User stop requested", "source", m.source.Key)
}

// ResumeRecording lifts a user stop
func (m *Monitor) ResumeRecording() {
	m.suppressed.Store(false)
	select {
	case m.resumeCh <- struct{}{}:
	default:
	}
	logging.Logger.Info("Recording resumed", "source", m.source.Key)
}

// Run polls the source until ctx is cancelled. An active capture is always
// stopped before Run returns.
func (m *Monitor) Run(ctx context.Context) error {
	m.reset()
	logging.Logger.Info("Monitor started", "source", m.source.Key, "url", m.source.URL)
	defer logging.Logger.Info("Monitor stopped", "source", m.source.Key)

	// The first poll after watch is immediate
	next := time.Now()
	for {
		if !m.sleepUntil(ctx, next) {
			m.transition(domain.StateIdle)
			return ctx.Err()
		}
		next = m.poll(ctx)
	}
}

// reset puts the loop state back to idle. Used on every (re)start.
func (m *Monitor) reset() {
	m.tunables = m.deps.Runtime.Load()
	m.failureBackoff = newBackOff(m.tunables.FailureBackoffInitial, m.tunables.FailureBackoffMax)
	m.resolveBackoff = newBackOff(m.tunables.ResolveRetryInitial, m.tunables.ResolveRetryMax)
	m.session = nil
	m.state = domain.StateIdle
	m.publish()
}

// refreshTunables picks up reloaded settings between cycles
func (m *Monitor) refreshTunables() {
	t := m.deps.Runtime.Load()
	if t.FailureBackoffInitial != m.tunables.FailureBackoffInitial || t.FailureBackoffMax != m.tunables.FailureBackoffMax {
		m.failureBackoff = newBackOff(t.FailureBackoffInitial, t.FailureBackoffMax)
	}
	if t.ResolveRetryInitial != m.tunables.ResolveRetryInitial || t.ResolveRetryMax != m.tunables.ResolveRetryMax {
		m.resolveBackoff = newBackOff(t.ResolveRetryInitial, t.ResolveRetryMax)
	}
	m.tunables = t
}

func newBackOff(initial, ceiling time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = ceiling
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// sleepUntil waits for t while serving resume requests.
// Returns false when ctx is cancelled.
func (m *Monitor) sleepUntil(ctx context.Context, t time.Time) bool {
	timer := time.NewTimer(time.Until(t))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return true
		case <-m.resumeCh:
			m.publish()
		case <-m.stopCh:
			// Nothing is recording; the suppression flag already took effect
			m.publish()
		}
	}
}

// poll runs one check cycle and returns when the next one is due
func (m *Monitor) poll(ctx context.Context) time.Time {
	m.refreshTunables()
	tun := m.tunables

	m.transition(domain.StateChecking)
	result, err := m.resolve(ctx)
	if ctx.Err() != nil {
		m.transition(domain.StateIdle)
		return time.Now()
	}

	now := time.Now()
	if err != nil {
		m.resolveFailures++
		m.lastError = err.Error()
		delay := m.resolveBackoff.NextBackOff()
		logging.Logger.Warn("Resolve failed, retrying",
			"source", m.source.Key,
			"error", err,
			"failures", m.resolveFailures,
			"retry_in", delay,
		)
		// Resolution errors never leave checking
		m.publish()
		return now.Add(delay)
	}

	m.resolveFailures = 0
	m.resolveBackoff.Reset()
	m.lastPolledAt = now
	m.live = result.Live && result.MediaURL != ""
	m.journalPoll(ctx, m.live, now)

	if !m.live {
		m.markOffline(now, tun)
		m.transition(domain.StateOffline)
		return now.Add(tun.PollInterval)
	}

	m.offlineSince = time.Time{}
	if m.suppressed.Load() {
		logging.Logger.Debug("Source live but recording suppressed by user", "source", m.source.Key)
		m.transition(domain.StateIdle)
		return now.Add(tun.PollInterval)
	}

	return m.record(ctx, result)
}

func (m *Monitor) resolve(ctx context.Context) (ports.ResolveResult, error) {
	rctx, cancel := context.WithTimeout(ctx, m.tunables.ResolveTimeout)
	defer cancel()

	result, err := m.deps.Resolver.Resolve(rctx, m.source)
	if err != nil && !errors.Is(err, domain.ErrResolve) {
		err = fmt.Errorf("%w: %w", domain.ErrResolve, err)
	}
	return result, err
}

// markOffline tracks how long the source has been offline and clears crash
// history once that period is long enough
func (m *Monitor) markOffline(now time.Time, tun config.Tunables) {
	if m.offlineSince.IsZero() {
		m.offlineSince = now
	}
	if m.suppressed.CompareAndSwap(true, false) {
		logging.Logger.Info("Source went offline, user stop lifted", "source", m.source.Key)
	}
	if m.crashCount > 0 && now.Sub(m.offlineSince) >= tun.StableOfflinePeriod {
		logging.Logger.Info("Source stable, crash history cleared", "source", m.source.Key, "crashes", m.crashCount)
		m.crashCount = 0
		m.failureBackoff.Reset()
	}
}

// record starts a session and supervises it until it ends. Returns when the
// next poll is due.
func (m *Monitor) record(ctx context.Context, result ports.ResolveResult) time.Time {
	tun := m.tunables

	// Stale stop tokens do not apply to this session. A stop that raced
	// the suppression check in poll has already set the flag.
	select {
	case <-m.stopCh:
	default:
	}
	if m.suppressed.Load() {
		logging.Logger.Debug("Recording suppressed by user before start", "source", m.source.Key)
		m.transition(domain.StateIdle)
		return time.Now().Add(tun.PollInterval)
	}

	m.transition(domain.StateLiveStarting)

	startedAt := time.Now()
	session := domain.Session{
		ID:          uuid.New().String(),
		MediaURL:    result.MediaURL,
		SourceKey:   m.source.Key,
		StartedAt:   startedAt,
		Termination: domain.TerminationNone,
	}

	path, err := m.deps.Namer.Claim(m.source.Key, startedAt)
	if err != nil {
		return m.startFailed(ctx, fmt.Errorf("%w: %w", domain.ErrCaptureStart, err))
	}
	session.OutputPath = path
	m.session = &session
	m.publish()

	handle, err := m.deps.Launcher.Start(ctx, ports.CaptureRequest{
		MediaURL:   result.MediaURL,
		OutputPath: path,
		PageURL:    m.source.URL,
		SourceKey:  m.source.Key,
	})
	if err != nil {
		m.endSession(session, nil, domain.ExitReason{Err: err}, domain.TerminationError)
		discardEmpty(path)
		return m.startFailed(ctx, err)
	}

	// Stop before discard, also when a panic unwinds this frame. The
	// capture must have exited before a restarted monitor can start another.
	finished := false
	defer func() {
		if finished {
			return
		}
		reason := m.stopCapture(handle, tun)
		if reason.Err == nil {
			reason.Err = errors.New("monitor aborted while recording")
		}
		m.endSession(session, handle.Info().ExitCode, reason, domain.TerminationError)
		discardEmpty(path)
	}()

	m.journalStart(ctx, session)
	logging.Logger.Info("Recording starting",
		"source", m.source.Key,
		"session", session.ID,
		"output", path,
		"protocol", result.Protocol,
	)

	healthy, cause := m.confirmHealthy(ctx, handle, tun)
	if !healthy {
		if cause == causeCancelled || cause == causeUserStop {
			m.transition(domain.StateStopping)
			reason := m.stopCapture(handle, tun)
			finished = true
			m.endSession(session, handle.Info().ExitCode, reason, domain.TerminationCancelled)
			discardEmpty(path)
			m.transition(domain.StateIdle)
			return time.Now().Add(tun.PollInterval)
		}

		reason := m.stopCapture(handle, tun)
		finished = true
		startErr := fmt.Errorf("%w: %s", domain.ErrCaptureStart, describeExit(reason, handle))
		reason.Err = startErr
		m.endSession(session, handle.Info().ExitCode, reason, domain.TerminationError)
		discardEmpty(path)
		return m.startFailed(ctx, startErr)
	}

	m.transition(domain.StateRecording)
	logging.Logger.Info("Recording", "source", m.source.Key, "session", session.ID)

	cause = m.supervise(ctx, handle, tun)
	m.transition(domain.StateStopping)
	reason := m.stopCapture(handle, tun)
	finished = true

	termination := terminationFor(cause, reason)
	if termination == domain.TerminationError && reason.Err == nil {
		reason.Err = fmt.Errorf("capture %s", cause)
	}
	m.endSession(session, handle.Info().ExitCode, reason, termination)
	discardEmpty(path)

	logging.Logger.Info("Recording ended",
		"source", m.source.Key,
		"session", session.ID,
		"cause", cause.String(),
		"termination", termination,
		"bytes", reason.BytesWritten,
		"escalated", reason.Escalated,
	)

	now := time.Now()
	switch {
	case termination == domain.TerminationError:
		m.crashCount++
		m.lastError = reason.Err.Error()
		if m.crashCount >= tun.CrashThreshold {
			logging.Logger.Error("Capture keeps crashing, backing off",
				"source", m.source.Key,
				"crashes", m.crashCount,
			)
			m.transition(domain.StateFailed)
			return m.failedWait(ctx)
		}
		m.transition(domain.StateIdle)
		// Re-poll at once; the broadcast may still be running
		return now
	case now.Sub(startedAt) >= tun.StableOfflinePeriod:
		m.crashCount = 0
		m.failureBackoff.Reset()
	}

	m.lastError = ""
	m.transition(domain.StateIdle)
	switch cause {
	case causeOffline:
		m.offlineSince = now
		return now.Add(tun.PollInterval)
	case causeExited:
		return now
	default:
		return now.Add(tun.PollInterval)
	}
}

// confirmHealthy waits up to StartGrace for the capture to report healthy
func (m *Monitor) confirmHealthy(ctx context.Context, handle ports.CaptureHandle, tun config.Tunables) (bool, endCause) {
	deadline := time.NewTimer(tun.StartGrace)
	defer deadline.Stop()
	ticker := time.NewTicker(tun.HealthCheckInterval)
	defer ticker.Stop()

	for {
		if handle.IsHealthy() {
			return true, causeNone
		}
		select {
		case <-ctx.Done():
			return false, causeCancelled
		case <-m.stopCh:
			return false, causeUserStop
		case <-handle.Done():
			return false, causeExited
		case <-deadline.C:
			return false, causeStalled
		case <-ticker.C:
		}
	}
}

// supervise watches a healthy capture until something ends the recording
func (m *Monitor) supervise(ctx context.Context, handle ports.CaptureHandle, tun config.Tunables) endCause {
	pollTicker := time.NewTicker(tun.PollInterval)
	defer pollTicker.Stop()
	healthTicker := time.NewTicker(tun.ProbeInterval)
	defer healthTicker.Stop()

	var unhealthySince time.Time
	for {
		select {
		case <-ctx.Done():
			return causeCancelled
		case <-m.stopCh:
			return causeUserStop
		case <-m.resumeCh:
			m.publish()
		case <-handle.Done():
			return causeExited
		case <-healthTicker.C:
			// IsHealthy already allows StallTimeout without growth;
			// one extra probe interval absorbs a single bad sample
			if handle.IsHealthy() {
				unhealthySince = time.Time{}
				continue
			}
			now := time.Now()
			if unhealthySince.IsZero() {
				unhealthySince = now
				continue
			}
			if now.Sub(unhealthySince) >= tun.ProbeInterval {
				logging.Logger.Warn("Capture stalled", "source", m.source.Key, "unhealthy_for", now.Sub(unhealthySince))
				return causeStalled
			}
		case <-pollTicker.C:
			result, err := m.resolve(ctx)
			if ctx.Err() != nil {
				return causeCancelled
			}
			if err != nil {
				// Only an explicit not-live answer ends a recording
				logging.Logger.Debug("Resolve failed while recording, ignored", "source", m.source.Key, "error", err)
				continue
			}
			now := time.Now()
			m.lastPolledAt = now
			m.live = result.Live
			m.journalPoll(ctx, result.Live, now)
			m.publish()
			if !result.Live {
				return causeOffline
			}
		}
	}
}

// stopCapture requests a stop and waits for the exit, bounded by the two
// phase stop window
func (m *Monitor) stopCapture(handle ports.CaptureHandle, tun config.Tunables) domain.ExitReason {
	handle.RequestStop()

	ctx, cancel := context.WithTimeout(context.Background(), tun.StopGrace+tun.KillTimeout+time.Second)
	defer cancel()

	reason, err := handle.Wait(ctx)
	if err != nil {
		logging.Logger.Error("Capture did not exit after stop",
			"source", m.source.Key,
			"pid", handle.Info().PID,
			"error", err,
		)
		return domain.ExitReason{Err: err, Escalated: true, StopRequested: true}
	}
	return reason
}

// startFailed moves live-starting to failed and waits out the backoff
func (m *Monitor) startFailed(ctx context.Context, err error) time.Time {
	m.lastError = err.Error()
	logging.Logger.Error("Capture failed to start", "source", m.source.Key, "error", err)
	m.transition(domain.StateFailed)
	return m.failedWait(ctx)
}

// failedWait holds the failed state for the current backoff, then returns
// to idle with an immediate poll
func (m *Monitor) failedWait(ctx context.Context) time.Time {
	m.session = nil
	delay := m.failureBackoff.NextBackOff()
	logging.Logger.Info("Source failed, waiting", "source", m.source.Key, "backoff", delay)
	m.publish()

	// On cancellation Run notices ctx before the next poll
	m.sleepUntil(ctx, time.Now().Add(delay))
	m.transition(domain.StateIdle)
	return time.Now()
}

func (m *Monitor) endSession(session domain.Session, exitCode *int, reason domain.ExitReason, termination domain.TerminationReason) {
	ended := time.Now()
	session.EndedAt = &ended
	session.BytesWritten = reason.BytesWritten
	session.Escalated = reason.Escalated
	session.Termination = termination
	if reason.Err != nil {
		session.Error = reason.Err.Error()
	}
	session.ExitCode = exitCode
	m.session = nil

	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := m.deps.Journal.SessionEnded(ctx, session); err != nil {
		logging.Logger.Warn("Failed to journal session end", "source", m.source.Key, "session", session.ID, "error", err)
	}
}

func (m *Monitor) journalStart(ctx context.Context, session domain.Session) {
	if err := m.deps.Journal.SessionStarted(ctx, session); err != nil {
		logging.Logger.Warn("Failed to journal session start", "source", m.source.Key, "session", session.ID, "error", err)
	}
}

func (m *Monitor) journalPoll(ctx context.Context, live bool, at time.Time) {
	if err := m.deps.Journal.PollRecorded(ctx, m.source.Key, live, at); err != nil {
		logging.Logger.Debug("Failed to journal poll", "source", m.source.Key, "error", err)
	}
}

// transition applies a state change if the state machine allows it.
// Disallowed changes are logged and ignored.
func (m *Monitor) transition(next domain.SourceState) error {
	if m.state == next {
		m.publish()
		return nil
	}
	if !m.state.CanTransition(next) {
		err := fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, m.state, next)
		logging.Logger.Warn("Rejected state transition", "source", m.source.Key, "error", err)
		return err
	}

	logging.Logger.Debug("State transition", "source", m.source.Key, "from", m.state, "to", next)
	m.state = next
	m.publish()
	return nil
}

// publish stores a fresh status snapshot for lock-free readers
func (m *Monitor) publish() {
	st := domain.SourceStatus{
		CrashCount:      m.crashCount,
		Key:             m.source.Key,
		LastError:       m.lastError,
		LastPolledAt:    m.lastPolledAt,
		Live:            m.live,
		ResolveFailures: m.resolveFailures,
		State:           m.state,
		Suppressed:      m.suppressed.Load(),
		UpdatedAt:       time.Now(),
	}
	if m.session != nil && m.state.HasSession() {
		started := m.session.StartedAt
		st.OutputPath = m.session.OutputPath
		st.SessionID = m.session.ID
		st.SessionStartTime = &started
	}
	m.status.Store(&st)
}

func terminationFor(cause endCause, reason domain.ExitReason) domain.TerminationReason {
	switch cause {
	case causeOffline:
		return domain.TerminationNormal
	case causeUserStop, causeCancelled:
		return domain.TerminationCancelled
	case causeExited:
		if reason.Crashed() {
			return domain.TerminationError
		}
		return domain.TerminationNormal
	default:
		return domain.TerminationError
	}
}

func describeExit(reason domain.ExitReason, handle ports.CaptureHandle) string {
	if reason.Err != nil {
		return reason.Err.Error()
	}
	diag := handle.Diagnostics()
	if len(diag) > 0 {
		return strings.TrimSpace(diag[len(diag)-1])
	}
	return fmt.Sprintf("no healthy output (exit code %d)", reason.Code)
}

// discardEmpty removes a claimed output file that never received data
func discardEmpty(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() > 0 {
		return
	}
	if err := os.Remove(path); err != nil {
		logging.Logger.Debug("Failed to remove empty output", "path", path, "error", err)
	}
}

// noopJournal is used when no journal is configured
type noopJournal struct{}

func (noopJournal) PollRecorded(context.Context, string, bool, time.Time) error { return nil }
func (noopJournal) SessionEnded(context.Context, domain.Session) error          { return nil }
func (noopJournal) SessionStarted(context.Context, domain.Session) error        { return nil }
