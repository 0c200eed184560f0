package ffmpeg

import (
	"strings"
	"sync"
)

// noisyMarkers identify stderr lines ffmpeg prints during normal HLS
// reconnects. They carry no diagnostic value.
var noisyMarkers = []string{
	"Will reconnect at",
	"HTTP error 404 Not Found",
	"Failed to open segment",
	"expired from playlists",
	"No trailing CRLF found in HTTP header",
}

// isNoise reports whether a stderr line should be dropped
func isNoise(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	for _, marker := range noisyMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// ring keeps the most recent lines
type ring struct {
	mu    sync.Mutex
	lines []string
	next  int
	full  bool
}

func newRing(size int) *ring {
	if size <= 0 {
		size = DefaultDiagnosticsSize
	}
	return &ring{lines: make([]string, size)}
}

func (r *ring) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines[r.next] = line
	r.next = (r.next + 1) % len(r.lines)
	if r.next == 0 {
		r.full = true
	}
}

// snapshot returns lines oldest first
func (r *ring) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		return append([]string(nil), r.lines[:r.next]...)
	}
	out := make([]string, 0, len(r.lines))
	out = append(out, r.lines[r.next:]...)
	return append(out, r.lines[:r.next]...)
}

// last returns the newest line, or ""
func (r *ring) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full && r.next == 0 {
		return ""
	}
	return r.lines[(r.next-1+len(r.lines))%len(r.lines)]
}
