package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexlevi/webcorder/internal/config"
	"github.com/plexlevi/webcorder/internal/domain"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024 / 2, "1.5 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}

func TestSessionResult(t *testing.T) {
	ended := time.Now()
	code := 137

	assert.Equal(t, "recording", sessionResult(domain.Session{}))
	assert.Equal(t, "normal", sessionResult(domain.Session{EndedAt: &ended, Termination: domain.TerminationNormal}))
	assert.Equal(t, "error (exit 137) killed", sessionResult(domain.Session{
		EndedAt:     &ended,
		Escalated:   true,
		ExitCode:    &code,
		Termination: domain.TerminationError,
	}))
}

func TestFormatStatusLine(t *testing.T) {
	polled := time.Now()
	sources := []domain.Source{
		{Key: "alice", WatchEnabled: true, LastPolledAt: polled, LastLive: true},
		{Key: "bob", WatchEnabled: true, LastPolledAt: polled},
		{Key: "carol", WatchEnabled: true},
		{Key: "dave", LastPolledAt: polled},
	}
	active := []domain.Session{{SourceKey: "alice"}}

	line := formatStatusLine(sources, active)
	assert.Equal(t,
		domain.StateRecording.Symbol()+":1 "+domain.StateChecking.Symbol()+":3 "+domain.StateOffline.Symbol()+":1",
		line)
}

func TestLastSeen(t *testing.T) {
	assert.Equal(t, "never", lastSeen(domain.Source{}))
	assert.Contains(t, lastSeen(domain.Source{LastPolledAt: time.Now(), LastLive: true}), "live at ")
	assert.Contains(t, lastSeen(domain.Source{LastPolledAt: time.Now()}), "offline at ")
}

func TestRunCmd_OutputDirPrecedence(t *testing.T) {
	settings := &config.Settings{OutputDir: "/srv/recordings"}

	assert.Equal(t, "/tmp/flag", (&RunCmd{OutputDir: "/tmp/flag"}).outputDir(settings))
	assert.Equal(t, "/srv/recordings", (&RunCmd{}).outputDir(settings))
	assert.Equal(t, config.DefaultOutputDir(), (&RunCmd{}).outputDir(&config.Settings{}))
}

func TestRunCmd_SSHAddrPrecedence(t *testing.T) {
	assert.Equal(t, ":2222", (&RunCmd{SSHAddr: ":2222"}).sshAddr(&config.Settings{SSHAddr: ":3333"}))
	assert.Equal(t, ":3333", (&RunCmd{}).sshAddr(&config.Settings{SSHAddr: ":3333"}))
	assert.Equal(t, config.DefaultSSHAddr, (&RunCmd{}).sshAddr(&config.Settings{}))
}

func TestRunCmd_ReloadKeepsFlagOverride(t *testing.T) {
	rt := config.NewRuntime(config.DefaultTunables())
	seconds := 90
	settings := &config.Settings{PollIntervalSeconds: &seconds}

	require.NoError(t, (&RunCmd{}).reload(rt, settings, nil))
	assert.Equal(t, 90*time.Second, rt.Load().PollInterval)

	require.NoError(t, (&RunCmd{PollInterval: 15 * time.Second}).reload(rt, settings, nil))
	assert.Equal(t, 15*time.Second, rt.Load().PollInterval)
}

func TestRunCmd_ReloadRejectsInvalid(t *testing.T) {
	rt := config.NewRuntime(config.DefaultTunables())
	zero := 0
	settings := &config.Settings{CrashThreshold: &zero}

	assert.Error(t, (&RunCmd{}).reload(rt, settings, nil))
	assert.Equal(t, config.DefaultTunables().CrashThreshold, rt.Load().CrashThreshold)
}
