package config

import (
	"os"
	"path/filepath"
)

// GetHome returns WEBCORDER_HOME or ~/.webcorder default
func GetHome() string {
	home := os.Getenv("WEBCORDER_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".webcorder"
		}
		return filepath.Join(homeDir, ".webcorder")
	}
	return ExpandPath(home)
}

// GetDBPath returns $WEBCORDER_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "state.db")
}

// GetSettingsPath returns $WEBCORDER_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// DefaultOutputDir returns ~/Downloads/webcorder
func DefaultOutputDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "recordings"
	}
	return filepath.Join(homeDir, "Downloads", "webcorder")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
