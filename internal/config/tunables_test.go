package config

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTunablesAreValid(t *testing.T) {
	require.NoError(t, DefaultTunables().Validate())
}

func TestTunablesValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Tunables)
	}{
		{name: "negative poll interval", modify: func(t *Tunables) { t.PollInterval = -time.Second }},
		{name: "zero stop grace", modify: func(t *Tunables) { t.StopGrace = 0 }},
		{name: "zero crash threshold", modify: func(t *Tunables) { t.CrashThreshold = 0 }},
		{name: "failure backoff max below initial", modify: func(t *Tunables) { t.FailureBackoffMax = t.FailureBackoffInitial / 2 }},
		{name: "resolve retry max below initial", modify: func(t *Tunables) { t.ResolveRetryMax = t.ResolveRetryInitial / 2 }},
		{name: "stall timeout below probe interval", modify: func(t *Tunables) { t.StallTimeout = t.ProbeInterval / 2 }},
		{name: "unwatch timeout shorter than a full stop", modify: func(t *Tunables) {
			t.StopGrace = 60 * time.Second
			t.UnwatchTimeout = 20 * time.Second
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tun := DefaultTunables()
			tt.modify(&tun)
			assert.Error(t, tun.Validate())
		})
	}
}

func TestRuntimeLoadStore(t *testing.T) {
	rt := NewRuntime(DefaultTunables())
	assert.Equal(t, 60*time.Second, rt.Load().PollInterval)

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tun := DefaultTunables()
			tun.PollInterval = time.Duration(i) * time.Second
			rt.Store(tun)
			_ = rt.Load()
		}(i)
	}
	wg.Wait()

	poll := rt.Load().PollInterval
	assert.True(t, poll >= time.Second && poll <= 10*time.Second)
}

func TestRuntimeLoadReturnsCopy(t *testing.T) {
	rt := NewRuntime(DefaultTunables())
	tun := rt.Load()
	tun.PollInterval = time.Millisecond

	assert.Equal(t, 60*time.Second, rt.Load().PollInterval)
}
