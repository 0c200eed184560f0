package config

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// Tunables holds the time constants of the recording engine.
// Tests inject short values; production uses DefaultTunables.
type Tunables struct {
	CrashThreshold        int
	FailureBackoffInitial time.Duration
	FailureBackoffMax     time.Duration
	HealthCheckInterval   time.Duration
	KillTimeout           time.Duration
	MonitorRestartDelay   time.Duration
	PollInterval          time.Duration
	ProbeInterval         time.Duration
	ResolveRetryInitial   time.Duration
	ResolveRetryMax       time.Duration
	ResolveTimeout        time.Duration
	StableOfflinePeriod   time.Duration
	StallTimeout          time.Duration
	StartGrace            time.Duration
	StopGrace             time.Duration
	UnwatchTimeout        time.Duration
}

// DefaultTunables returns production defaults.
// Poll interval, crash threshold and failure backoff follow the classic
// autorecord settings (60s check interval, 3 retries, 30s retry delay).
func DefaultTunables() Tunables {
	return Tunables{
		CrashThreshold:        3,
		FailureBackoffInitial: 30 * time.Second,
		FailureBackoffMax:     10 * time.Minute,
		HealthCheckInterval:   time.Second,
		KillTimeout:           5 * time.Second,
		MonitorRestartDelay:   time.Second,
		PollInterval:          60 * time.Second,
		ProbeInterval:         5 * time.Second,
		ResolveRetryInitial:   5 * time.Second,
		ResolveRetryMax:       5 * time.Minute,
		ResolveTimeout:        30 * time.Second,
		StableOfflinePeriod:   5 * time.Minute,
		StallTimeout:          90 * time.Second,
		StartGrace:            30 * time.Second,
		StopGrace:             10 * time.Second,
		UnwatchTimeout:        20 * time.Second,
	}
}

// Validate checks that every duration is usable
func (t Tunables) Validate() error {
	durations := map[string]time.Duration{
		"failure_backoff_initial": t.FailureBackoffInitial,
		"failure_backoff_max":     t.FailureBackoffMax,
		"health_check_interval":   t.HealthCheckInterval,
		"kill_timeout":            t.KillTimeout,
		"monitor_restart_delay":   t.MonitorRestartDelay,
		"poll_interval":           t.PollInterval,
		"probe_interval":          t.ProbeInterval,
		"resolve_retry_initial":   t.ResolveRetryInitial,
		"resolve_retry_max":       t.ResolveRetryMax,
		"resolve_timeout":         t.ResolveTimeout,
		"stable_offline_period":   t.StableOfflinePeriod,
		"stall_timeout":           t.StallTimeout,
		"start_grace":             t.StartGrace,
		"stop_grace":              t.StopGrace,
		"unwatch_timeout":         t.UnwatchTimeout,
	}

	var errs []error
	for name, d := range durations {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if t.CrashThreshold < 1 {
		errs = append(errs, fmt.Errorf("crash_threshold must be at least 1, got %d", t.CrashThreshold))
	}
	if t.FailureBackoffMax < t.FailureBackoffInitial {
		errs = append(errs, errors.New("failure_backoff_max must not be below failure_backoff_initial"))
	}
	if t.ResolveRetryMax < t.ResolveRetryInitial {
		errs = append(errs, errors.New("resolve_retry_max must not be below resolve_retry_initial"))
	}
	if t.StallTimeout < t.ProbeInterval {
		errs = append(errs, errors.New("stall_timeout must not be below probe_interval"))
	}
	if floor := t.StopGrace + t.KillTimeout; t.UnwatchTimeout < floor {
		errs = append(errs, fmt.Errorf("unwatch_timeout must cover stop_grace plus kill_timeout (%s), got %s", floor, t.UnwatchTimeout))
	}
	return errors.Join(errs...)
}

// Runtime shares the current tunables between goroutines.
// Readers call Load on every cycle so a reload takes effect without restarts.
type Runtime struct {
	current atomic.Pointer[Tunables]
}

// NewRuntime creates a Runtime holding t
func NewRuntime(t Tunables) *Runtime {
	r := &Runtime{}
	r.Store(t)
	return r
}

// Load returns the current tunables
func (r *Runtime) Load() Tunables {
	return *r.current.Load()
}

// Store replaces the current tunables
func (r *Runtime) Store(t Tunables) {
	r.current.Store(&t)
}
