package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default values used when neither flags, env nor settings.json set them
const (
	DefaultContainer    = "mp4"
	DefaultMaxLogFiles  = 1000
	DefaultSSHAddr      = "localhost:23235"
	DefaultSyncInterval = 30 * time.Second
)

// DefaultResolverCommand asks yt-dlp for the direct media URL of a page
var DefaultResolverCommand = []string{"yt-dlp", "-g", "--no-warnings", "{url}"}

// Settings represents the structure of ~/.webcorder/settings.json
type Settings struct {
	AuthorizedKeysPath           string      `json:"authorized_keys_path,omitempty"`
	CaptureTool                  string      `json:"capture_tool,omitempty"`
	Container                    string      `json:"container,omitempty"`
	CrashThreshold               *int        `json:"crash_threshold,omitempty"`
	Debug                        *bool       `json:"debug,omitempty"`
	FailureBackoffInitialSeconds *int        `json:"failure_backoff_initial_seconds,omitempty"`
	FailureBackoffMaxSeconds     *int        `json:"failure_backoff_max_seconds,omitempty"`
	MaxLogFiles                  *int        `json:"max_log_files,omitempty"`
	OfflineMarkers               StringArray `json:"offline_markers,omitempty"`
	OutputDir                    string      `json:"output_dir,omitempty"`
	PollIntervalSeconds          *int        `json:"poll_interval_seconds,omitempty"`
	ResolveTimeoutSeconds        *int        `json:"resolve_timeout_seconds,omitempty"`
	ResolverCommand              StringArray `json:"resolver_command,omitempty"`
	SSHAddr                      string      `json:"ssh_addr,omitempty"`
	StableOfflineSeconds         *int        `json:"stable_offline_seconds,omitempty"`
	StallTimeoutSeconds          *int        `json:"stall_timeout_seconds,omitempty"`
	StartGraceSeconds            *int        `json:"start_grace_seconds,omitempty"`
	StopGraceSeconds             *int        `json:"stop_grace_seconds,omitempty"`
	SyncIntervalSeconds          *int        `json:"sync_interval_seconds,omitempty"`
}

// StringArray supports both JSON arrays and comma-separated strings
type StringArray []string

// UnmarshalJSON implements custom unmarshaling for StringArray
func (sa *StringArray) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*sa = arr
		return nil
	}

	// Fall back to comma-separated string
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*sa = parseCommaSeparated(str)
	return nil
}

// parseCommaSeparated splits comma-separated string and trims whitespace
func parseCommaSeparated(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// LoadSettings loads settings from $WEBCORDER_HOME/settings.json (or ~/.webcorder/settings.json if not set)
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	// Expand paths that start with ~
	if settings.OutputDir != "" {
		settings.OutputDir = ExpandPath(settings.OutputDir)
	}
	if settings.AuthorizedKeysPath != "" {
		settings.AuthorizedKeysPath = ExpandPath(settings.AuthorizedKeysPath)
	}
	if settings.CaptureTool != "" {
		settings.CaptureTool = ExpandPath(settings.CaptureTool)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $WEBCORDER_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// Validate checks values that cannot be fixed by falling back to defaults
func (s *Settings) Validate() error {
	switch s.Container {
	case "", "mp4", "mkv":
	default:
		return fmt.Errorf("container must be mp4 or mkv, got %q", s.Container)
	}
	if len(s.ResolverCommand) > 0 && !containsPlaceholder(s.ResolverCommand) {
		return fmt.Errorf("resolver_command must contain the {url} placeholder")
	}
	return s.ApplyTunables(DefaultTunables()).Validate()
}

func containsPlaceholder(args []string) bool {
	for _, a := range args {
		if strings.Contains(a, "{url}") {
			return true
		}
	}
	return false
}

// ApplyTunables overlays the durations set in settings.json on base
func (s *Settings) ApplyTunables(base Tunables) Tunables {
	t := base
	if s == nil {
		return t
	}

	applySeconds(&t.FailureBackoffInitial, s.FailureBackoffInitialSeconds)
	applySeconds(&t.FailureBackoffMax, s.FailureBackoffMaxSeconds)
	applySeconds(&t.PollInterval, s.PollIntervalSeconds)
	applySeconds(&t.ResolveTimeout, s.ResolveTimeoutSeconds)
	applySeconds(&t.StableOfflinePeriod, s.StableOfflineSeconds)
	applySeconds(&t.StallTimeout, s.StallTimeoutSeconds)
	applySeconds(&t.StartGrace, s.StartGraceSeconds)
	applySeconds(&t.StopGrace, s.StopGraceSeconds)
	if s.CrashThreshold != nil {
		t.CrashThreshold = *s.CrashThreshold
	}

	// Unwatch must outlive a full two-phase stop
	if floor := t.StopGrace + t.KillTimeout; t.UnwatchTimeout < floor {
		t.UnwatchTimeout = floor + 5*time.Second
	}
	return t
}

func applySeconds(dst *time.Duration, seconds *int) {
	if seconds != nil {
		*dst = time.Duration(*seconds) * time.Second
	}
}

// GetContainer returns the configured output container
func (s *Settings) GetContainer() string {
	if s == nil || s.Container == "" {
		return DefaultContainer
	}
	return s.Container
}

// GetResolverCommand returns the configured resolver argv template
func (s *Settings) GetResolverCommand() []string {
	if s == nil || len(s.ResolverCommand) == 0 {
		return append([]string(nil), DefaultResolverCommand...)
	}
	return append([]string(nil), s.ResolverCommand...)
}

// GetSyncInterval returns how often the watch set is synced with the database
func (s *Settings) GetSyncInterval() time.Duration {
	if s == nil || s.SyncIntervalSeconds == nil || *s.SyncIntervalSeconds <= 0 {
		return DefaultSyncInterval
	}
	return time.Duration(*s.SyncIntervalSeconds) * time.Second
}
