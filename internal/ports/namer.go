package ports

import "time"

// PathNamer assigns output files to sessions
type PathNamer interface {
	// Claim returns a free output path for a session and reserves it on disk
	Claim(sourceKey string, startedAt time.Time) (string, error)
}
