package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettingsFromMissingFile(t *testing.T) {
	settings, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, settings)
}

func TestLoadSettingsFrom(t *testing.T) {
	path := writeSettings(t, `{
		"container": "mkv",
		"output_dir": "~/rec",
		"poll_interval_seconds": 15,
		"resolver_command": "streamlink,--stream-url,{url},best",
		"offline_markers": ["is offline", "not live"]
	}`)

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "mkv", settings.GetContainer())
	assert.Equal(t, filepath.Join(home, "rec"), settings.OutputDir)
	assert.Equal(t, []string{"streamlink", "--stream-url", "{url}", "best"}, settings.GetResolverCommand())
	assert.Equal(t, StringArray{"is offline", "not live"}, settings.OfflineMarkers)
	require.NotNil(t, settings.PollIntervalSeconds)
	assert.Equal(t, 15, *settings.PollIntervalSeconds)
}

func TestLoadSettingsFromRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: `{"container": `},
		{name: "unknown container", content: `{"container": "avi"}`},
		{name: "resolver without placeholder", content: `{"resolver_command": ["yt-dlp", "-g"]}`},
		{name: "zero poll interval", content: `{"poll_interval_seconds": 0}`},
		{name: "zero crash threshold", content: `{"crash_threshold": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettingsFrom(writeSettings(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestSettingsDefaults(t *testing.T) {
	var settings *Settings

	assert.Equal(t, DefaultContainer, settings.GetContainer())
	assert.Equal(t, DefaultResolverCommand, settings.GetResolverCommand())
	assert.Equal(t, DefaultSyncInterval, settings.GetSyncInterval())
	assert.Equal(t, DefaultTunables(), settings.ApplyTunables(DefaultTunables()))
}

func TestGetResolverCommandReturnsCopy(t *testing.T) {
	settings := &Settings{}
	cmd := settings.GetResolverCommand()
	cmd[0] = "changed"

	assert.Equal(t, "yt-dlp", DefaultResolverCommand[0])
}

func TestApplyTunables(t *testing.T) {
	crash := 5
	poll := 20
	stopGrace := 30
	settings := &Settings{
		CrashThreshold:      &crash,
		PollIntervalSeconds: &poll,
		StopGraceSeconds:    &stopGrace,
	}

	tun := settings.ApplyTunables(DefaultTunables())

	assert.Equal(t, 5, tun.CrashThreshold)
	assert.Equal(t, 20*time.Second, tun.PollInterval)
	assert.Equal(t, 30*time.Second, tun.StopGrace)
	// Unwatch timeout is raised above stop grace plus kill timeout
	assert.Greater(t, tun.UnwatchTimeout, tun.StopGrace+tun.KillTimeout)
	require.NoError(t, tun.Validate())
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	t.Setenv("WEBCORDER_HOME", filepath.Join(t.TempDir(), "home"))
	poll := 45
	require.NoError(t, SaveSettings(&Settings{Container: "mkv", PollIntervalSeconds: &poll}))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "mkv", loaded.Container)
	require.NotNil(t, loaded.PollIntervalSeconds)
	assert.Equal(t, 45, *loaded.PollIntervalSeconds)
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("WEBCORDER_HOME", home)

	assert.Equal(t, home, GetHome())
	assert.Equal(t, filepath.Join(home, "state.db"), GetDBPath())
	assert.Equal(t, filepath.Join(home, "settings.json"), GetSettingsPath())
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
}
