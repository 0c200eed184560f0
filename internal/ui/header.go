package ui

import (
	"fmt"

	"github.com/plexlevi/webcorder/internal/theme"
)

// VersionInfo holds version information for display in the header.
// Populated by main.go from ldflags-injected values.
type VersionInfo struct {
	Commit    string
	Date      string
	GoVersion string
	Tagline   string
	Version   string
}

// DefaultVersionInfo provides default values when version info is not available
var DefaultVersionInfo = VersionInfo{
	Commit:    "unknown",
	Date:      "unknown",
	GoVersion: "unknown",
	Tagline:   "Records live streams the moment they go live",
	Version:   "dev",
}

// versionInfo holds the global version info set by SetVersionInfo
var versionInfo = DefaultVersionInfo

// SetVersionInfo sets the global version info (called from main.go)
func SetVersionInfo(info VersionInfo) {
	versionInfo = info
}

// renderHeader shows the app name, version and an optional title such as
// "ssh" for remote sessions
func renderHeader(title string) string {
	header := theme.AppNameStyle.Render("webcorder")

	commit := versionInfo.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	header += theme.VersionStyle.Render(fmt.Sprintf(" %s (%s)", versionInfo.Version, commit))

	if title != "" {
		header += " " + theme.SubtitleStyle.Render(title)
	}
	return header
}
