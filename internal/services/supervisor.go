package services

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/plexlevi/webcorder/internal/config"
	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/logging"
)

// Supervisor owns one Monitor per watched source and restarts monitors
// that die unexpectedly
type Supervisor struct {
	deps MonitorDeps

	mu      sync.Mutex
	entries map[string]*watchEntry
	// Unwatched entries whose monitor outlived the unwatch timeout. Their
	// keys cannot be watched again until the old monitor has returned.
	stopping map[string]*watchEntry
}

type watchEntry struct {
	cancel   context.CancelFunc
	done     chan struct{}
	monitor  *Monitor
	removing bool
	restarts int
}

// NewSupervisor creates a Supervisor without watched sources
func NewSupervisor(deps MonitorDeps) *Supervisor {
	return &Supervisor{
		deps:     deps,
		entries:  make(map[string]*watchEntry),
		stopping: make(map[string]*watchEntry),
	}
}

// Watch starts monitoring source. Watching an already watched source is a
// no-op. A source that is still being unwatched returns ErrSourceStopping.
func (s *Supervisor) Watch(source domain.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[source.Key]; ok {
		if e.removing {
			return fmt.Errorf("%w: %s", domain.ErrSourceStopping, source.Key)
		}
		return nil
	}
	if _, ok := s.stopping[source.Key]; ok {
		return fmt.Errorf("%w: %s", domain.ErrSourceStopping, source.Key)
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &watchEntry{
		cancel:  cancel,
		done:    make(chan struct{}),
		monitor: NewMonitor(source, s.deps),
	}
	s.entries[source.Key] = e

	go s.supervise(ctx, e)

	logging.Logger.Info("Source watched", "source", source.Key)
	return nil
}

// supervise runs the monitor and restarts it after a panic or an early
// return, with a growing delay
func (s *Supervisor) supervise(ctx context.Context, e *watchEntry) {
	defer close(e.done)

	tun := s.deps.Runtime.Load()
	delay := tun.MonitorRestartDelay
	for {
		err := runMonitor(ctx, e.monitor)
		if ctx.Err() != nil {
			return
		}

		s.mu.Lock()
		e.restarts++
		restarts := e.restarts
		s.mu.Unlock()

		logging.Logger.Error("Monitor exited unexpectedly, restarting",
			"source", e.monitor.Key(),
			"error", err,
			"restarts", restarts,
			"delay", delay,
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		delay *= 2
		if ceiling := s.deps.Runtime.Load().FailureBackoffMax; delay > ceiling {
			delay = ceiling
		}
	}
}

func runMonitor(ctx context.Context, m *Monitor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("monitor panic: %v", r)
			logging.Logger.Error("Monitor panicked", "source", m.Key(), "panic", r, "stack", string(debug.Stack()))
		}
	}()

	err = m.Run(ctx)
	if err == nil {
		err = fmt.Errorf("monitor returned without cancellation")
	}
	return err
}

// Unwatch stops monitoring key. It returns once the monitor has stopped its
// capture, or after the unwatch timeout. The source is removed either way,
// but after a timeout the key is refused by Watch until the old monitor is
// gone.
func (s *Supervisor) Unwatch(ctx context.Context, key string) error {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	first := !e.removing
	e.removing = true
	s.mu.Unlock()

	if first {
		logging.Logger.Info("Unwatching source", "source", key)
		e.cancel()
	}

	timeout := s.deps.Runtime.Load().UnwatchTimeout
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var err error
	stopped := false
	select {
	case <-e.done:
		stopped = true
	case <-timer.C:
		logging.Logger.Error("Monitor did not stop in time, removing anyway",
			"source", key,
			"timeout", timeout,
			"state", e.monitor.Status().State,
		)
	case <-ctx.Done():
		err = ctx.Err()
	}

	s.mu.Lock()
	if s.entries[key] == e {
		delete(s.entries, key)
		if !stopped {
			s.stopping[key] = e
			go s.release(key, e)
		}
	}
	s.mu.Unlock()

	return err
}

// release forgets a timed-out entry once its monitor has returned
func (s *Supervisor) release(key string, e *watchEntry) {
	<-e.done

	s.mu.Lock()
	if s.stopping[key] == e {
		delete(s.stopping, key)
	}
	s.mu.Unlock()

	logging.Logger.Info("Late monitor stopped, source can be watched again", "source", key)
}

// ShutdownAll unwatches every source in parallel
func (s *Supervisor) ShutdownAll(ctx context.Context) error {
	keys := s.Keys()
	if len(keys) == 0 {
		return nil
	}

	logging.Logger.Info("Stopping all monitors", "count", len(keys))

	g, gctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		g.Go(func() error {
			return s.Unwatch(gctx, key)
		})
	}
	return g.Wait()
}

// StatusSnapshot returns the current status of every watched source
func (s *Supervisor) StatusSnapshot() map[string]domain.SourceStatus {
	s.mu.Lock()
	monitors := make([]*Monitor, 0, len(s.entries))
	for _, e := range s.entries {
		monitors = append(monitors, e.monitor)
	}
	s.mu.Unlock()

	snapshot := make(map[string]domain.SourceStatus, len(monitors))
	for _, m := range monitors {
		snapshot[m.Key()] = m.Status()
	}
	return snapshot
}

// StopRecording ends the current recording of key and suppresses new ones
// until the source goes offline
func (s *Supervisor) StopRecording(key string) error {
	m, err := s.monitor(key)
	if err != nil {
		return err
	}
	m.RequestStop()
	return nil
}

// ResumeRecording lifts a user stop on key
func (s *Supervisor) ResumeRecording(key string) error {
	m, err := s.monitor(key)
	if err != nil {
		return err
	}
	m.ResumeRecording()
	return nil
}

func (s *Supervisor) monitor(key string) (*Monitor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.removing {
		return nil, fmt.Errorf("%w: %s is not watched", domain.ErrSourceNotFound, key)
	}
	return e.monitor, nil
}

// IsWatched reports whether key has a monitor that is not being removed
func (s *Supervisor) IsWatched(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	return ok && !e.removing
}

// Keys returns the watched keys in sorted order
func (s *Supervisor) Keys() []string {
	s.mu.Lock()
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	s.mu.Unlock()

	sort.Strings(keys)
	return keys
}

// Len returns the number of watched sources
func (s *Supervisor) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Reload validates t and makes it the timing for every monitor from their
// next cycle on
func (s *Supervisor) Reload(t config.Tunables) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.deps.Runtime.Store(t)
	logging.Logger.Info("Timing settings reloaded", "poll_interval", t.PollInterval, "crash_threshold", t.CrashThreshold)
	return nil
}
