package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plexlevi/webcorder/internal/config"
	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/ports"
)

func fastTunables() config.Tunables {
	t := config.DefaultTunables()
	t.CrashThreshold = 3
	t.FailureBackoffInitial = 30 * time.Millisecond
	t.FailureBackoffMax = 100 * time.Millisecond
	t.HealthCheckInterval = 5 * time.Millisecond
	t.KillTimeout = 50 * time.Millisecond
	t.MonitorRestartDelay = 10 * time.Millisecond
	t.PollInterval = 20 * time.Millisecond
	t.ProbeInterval = 10 * time.Millisecond
	t.ResolveRetryInitial = 10 * time.Millisecond
	t.ResolveRetryMax = 40 * time.Millisecond
	t.ResolveTimeout = 100 * time.Millisecond
	t.StableOfflinePeriod = time.Hour
	t.StallTimeout = 50 * time.Millisecond
	t.StartGrace = 200 * time.Millisecond
	t.StopGrace = 50 * time.Millisecond
	t.UnwatchTimeout = 500 * time.Millisecond
	return t
}

// fakeResolver answers from a mutable state and counts calls
type fakeResolver struct {
	mu    sync.Mutex
	calls int
	err   error
	live  bool
	panic bool
	next  func(call int) (bool, error) // overrides live/err when set
}

func (r *fakeResolver) Resolve(ctx context.Context, source domain.Source) (ports.ResolveResult, error) {
	r.mu.Lock()
	r.calls++
	call := r.calls
	live, err, next, panicking := r.live, r.err, r.next, r.panic
	r.panic = false
	r.mu.Unlock()

	if panicking {
		panic("resolver exploded")
	}
	if next != nil {
		live, err = next(call)
	}
	if err != nil {
		return ports.ResolveResult{}, err
	}
	if !live {
		return ports.ResolveResult{Protocol: "unknown"}, nil
	}
	return ports.ResolveResult{
		Live:     true,
		MediaURL: "https://cdn.example.com/" + source.Key + "/index.m3u8",
		Protocol: "m3u8",
	}, nil
}

func (r *fakeResolver) set(live bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live = live
	r.err = err
}

func (r *fakeResolver) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// fakeHandle is a capture that writes a few bytes and exits when told to
type fakeHandle struct {
	done       chan struct{}
	ignoreStop bool
	stopDelay  time.Duration // exit this long after the first stop request
	launcher   *fakeLauncher
	path       string
	startedAt  time.Time

	exitOnce  sync.Once
	healthy   atomic.Bool
	stopCalls atomic.Int32

	mu   sync.Mutex
	exit domain.ExitReason
	code *int
}

var _ ports.CaptureHandle = (*fakeHandle)(nil)

func (h *fakeHandle) Diagnostics() []string {
	return []string{"Error opening input: 403 Forbidden"}
}

func (h *fakeHandle) Done() <-chan struct{} {
	return h.done
}

func (h *fakeHandle) Info() domain.CaptureInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return domain.CaptureInfo{ExitCode: h.code, PID: 4242, StartedAt: h.startedAt}
}

func (h *fakeHandle) IsHealthy() bool {
	select {
	case <-h.done:
		return false
	default:
		return h.healthy.Load()
	}
}

func (h *fakeHandle) RequestStop() {
	if h.stopCalls.Add(1) > 1 || h.ignoreStop {
		return
	}
	if h.stopDelay > 0 {
		time.AfterFunc(h.stopDelay, func() { h.finish(0, nil, true) })
		return
	}
	h.finish(0, nil, true)
}

func (h *fakeHandle) Wait(ctx context.Context) (domain.ExitReason, error) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.exit, nil
	case <-ctx.Done():
		return domain.ExitReason{}, ctx.Err()
	}
}

// kill simulates the process dying without a stop request
func (h *fakeHandle) kill() {
	h.finish(137, errors.New("signal: killed"), false)
}

func (h *fakeHandle) finish(code int, err error, requested bool) {
	h.exitOnce.Do(func() {
		var size int64
		if info, statErr := os.Stat(h.path); statErr == nil {
			size = info.Size()
		}
		h.mu.Lock()
		h.code = &code
		h.exit = domain.ExitReason{
			BytesWritten:  size,
			Code:          code,
			Duration:      time.Since(h.startedAt),
			Err:           err,
			StopRequested: requested,
		}
		h.mu.Unlock()
		h.launcher.active.Add(-1)
		close(h.done)
	})
}

func (h *fakeHandle) stopped() bool {
	return h.stopCalls.Load() > 0
}

func (h *fakeHandle) exited() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// fakeLauncher creates fakeHandles and tracks how many run at once
type fakeLauncher struct {
	configure func(h *fakeHandle)
	startErr  error

	active    atomic.Int32
	maxActive atomic.Int32

	mu       sync.Mutex
	handles  []*fakeHandle
	requests []ports.CaptureRequest
}

func (l *fakeLauncher) Start(ctx context.Context, req ports.CaptureRequest) (ports.CaptureHandle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.requests = append(l.requests, req)
	if l.startErr != nil {
		return nil, l.startErr
	}

	if err := os.WriteFile(req.OutputPath, []byte("ftypisom"), 0644); err != nil {
		return nil, err
	}

	h := &fakeHandle{
		done:      make(chan struct{}),
		launcher:  l,
		path:      req.OutputPath,
		startedAt: time.Now(),
	}
	h.healthy.Store(true)
	if l.configure != nil {
		l.configure(h)
	}

	n := l.active.Add(1)
	for {
		m := l.maxActive.Load()
		if n <= m || l.maxActive.CompareAndSwap(m, n) {
			break
		}
	}

	l.handles = append(l.handles, h)
	return h, nil
}

func (l *fakeLauncher) starts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

func (l *fakeLauncher) handle(i int) *fakeHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handles[i]
}

func (l *fakeLauncher) lastHandle() *fakeHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handles[len(l.handles)-1]
}

// fakeJournal keeps what monitors report
type fakeJournal struct {
	mu      sync.Mutex
	ended   []domain.Session
	polls   int
	started []domain.Session
}

func (j *fakeJournal) PollRecorded(ctx context.Context, key string, live bool, at time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.polls++
	return nil
}

func (j *fakeJournal) SessionEnded(ctx context.Context, session domain.Session) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ended = append(j.ended, session)
	return nil
}

func (j *fakeJournal) SessionStarted(ctx context.Context, session domain.Session) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.started = append(j.started, session)
	return nil
}

func (j *fakeJournal) endedSessions() []domain.Session {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]domain.Session(nil), j.ended...)
}

type testRig struct {
	journal  *fakeJournal
	launcher *fakeLauncher
	resolver *fakeResolver
	runtime  *config.Runtime
	dir      string
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	return &testRig{
		dir:      t.TempDir(),
		journal:  &fakeJournal{},
		launcher: &fakeLauncher{},
		resolver: &fakeResolver{},
		runtime:  config.NewRuntime(fastTunables()),
	}
}

func (r *testRig) deps() MonitorDeps {
	return MonitorDeps{
		Journal:  r.journal,
		Launcher: r.launcher,
		Namer:    NewPathNamer(r.dir, "mp4"),
		Resolver: r.resolver,
		Runtime:  r.runtime,
	}
}

// startMonitor runs m until the test ends and returns a func that cancels
// it and waits for Run to return
func startMonitor(t *testing.T, m *Monitor) (stop func() error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Run(ctx)
	}()

	var once sync.Once
	var runErr error
	stop = func() error {
		once.Do(func() {
			cancel()
			select {
			case runErr = <-errCh:
			case <-time.After(5 * time.Second):
				t.Error("monitor did not return after cancel")
			}
		})
		return runErr
	}
	t.Cleanup(func() { _ = stop() })
	return stop
}

func waitForState(t *testing.T, m *Monitor, state domain.SourceState) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.Status().State == state
	}, 3*time.Second, time.Millisecond, "monitor never reached %s (now %s)", state, m.Status().State)
}
