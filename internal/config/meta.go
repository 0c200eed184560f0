package config

import (
	"reflect"
	"sort"
	"strings"
)

// SettingsField describes one settings.json key for `settings meta`
type SettingsField struct {
	Example any    `json:"example"`
	Name    string `json:"name"`
}

// GetSettingsExample uses reflection over Settings so new fields show up
// without touching this file. Fields are sorted by name.
func GetSettingsExample() []SettingsField {
	t := reflect.TypeOf(Settings{})
	fields := make([]SettingsField, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		jsonTag := t.Field(i).Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		fields = append(fields, SettingsField{
			Example: exampleValue(t.Field(i).Type, name),
			Name:    name,
		})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

// exampleValue prefers the real default for a key and falls back to a
// placeholder of the right kind
func exampleValue(t reflect.Type, name string) any {
	defaults := DefaultTunables()

	switch name {
	case "authorized_keys_path":
		return "~/.ssh/authorized_keys"
	case "capture_tool":
		return "ffmpeg"
	case "container":
		return DefaultContainer
	case "crash_threshold":
		return defaults.CrashThreshold
	case "failure_backoff_initial_seconds":
		return int(defaults.FailureBackoffInitial.Seconds())
	case "failure_backoff_max_seconds":
		return int(defaults.FailureBackoffMax.Seconds())
	case "max_log_files":
		return DefaultMaxLogFiles
	case "offline_markers":
		return []string{"is offline", "not currently live"}
	case "output_dir":
		return "~/Downloads/webcorder"
	case "poll_interval_seconds":
		return int(defaults.PollInterval.Seconds())
	case "resolve_timeout_seconds":
		return int(defaults.ResolveTimeout.Seconds())
	case "resolver_command":
		return DefaultResolverCommand
	case "ssh_addr":
		return DefaultSSHAddr
	case "stable_offline_seconds":
		return int(defaults.StableOfflinePeriod.Seconds())
	case "stall_timeout_seconds":
		return int(defaults.StallTimeout.Seconds())
	case "start_grace_seconds":
		return int(defaults.StartGrace.Seconds())
	case "stop_grace_seconds":
		return int(defaults.StopGrace.Seconds())
	case "sync_interval_seconds":
		return int(DefaultSyncInterval.Seconds())
	}

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return true
	case reflect.Int:
		return 10
	case reflect.Slice:
		return []string{"example1", "example2"}
	default:
		return "example"
	}
}
