package ports

import (
	"context"
	"time"

	"github.com/plexlevi/webcorder/internal/domain"
)

// SourceReader reads the watch list
type SourceReader interface {
	GetSource(ctx context.Context, key string) (*domain.Source, error)
	ListSources(ctx context.Context) ([]domain.Source, error)
}

// SourceWriter creates, deletes and toggles sources
type SourceWriter interface {
	AddSource(ctx context.Context, source domain.Source) error
	DeleteSource(ctx context.Context, key string) error
	SetWatchEnabled(ctx context.Context, key string, enabled bool) error
}

// RecordingJournal persists what monitors observe.
// Journal failures never affect the monitor that reports them.
type RecordingJournal interface {
	PollRecorded(ctx context.Context, key string, live bool, at time.Time) error
	SessionEnded(ctx context.Context, session domain.Session) error
	SessionStarted(ctx context.Context, session domain.Session) error
}

// SessionReader reads the session archive
type SessionReader interface {
	ListSessions(ctx context.Context, filter domain.SessionFilter) ([]domain.Session, error)
}

// SourceRepository is the composite interface
type SourceRepository interface {
	SourceReader
	SourceWriter
	RecordingJournal
	SessionReader
	Close() error
}
