package ports

import (
	"context"

	"github.com/plexlevi/webcorder/internal/domain"
)

// ResolveResult is the answer of a resolver for one source
type ResolveResult struct {
	Live     bool
	MediaURL string
	Protocol string // "m3u8" or "unknown"
}

// Resolver translates a source into a playable media URL
type Resolver interface {
	// Resolve reports whether the source is live right now.
	// Timeouts and transport failures are returned as errors, never as offline.
	Resolve(ctx context.Context, source domain.Source) (ResolveResult, error)
}
