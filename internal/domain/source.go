package domain

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Source is one watched live-stream origin
type Source struct {
	CreatedAt    time.Time
	Key          string
	LastLive     bool
	LastPolledAt time.Time
	URL          string
	WatchEnabled bool
}

// unsafeFilenameChars matches characters that are not allowed in file names
// on at least one supported platform.
var unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

// SanitizeFilename replaces characters that are unsafe in file names with
// underscores and trims surrounding whitespace.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(name, "_"))
}

// SourceKeyFromURL derives a source key from a page URL.
// The first path segment is the channel or model name; hosts without a path
// fall back to the host name.
func SourceKeyFromURL(pageURL string) string {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return ""
	}

	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		// Bare names are keys already
		return SanitizeFilename(strings.Trim(pageURL, "/"))
	}

	for _, part := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		if part == "" || part == "room" {
			continue
		}
		if unescaped, err := url.PathUnescape(part); err == nil {
			part = unescaped
		}
		return SanitizeFilename(part)
	}

	return SanitizeFilename(strings.TrimPrefix(parsed.Hostname(), "www."))
}
