package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/logging"
	"github.com/plexlevi/webcorder/internal/ports"
)

// watchSet is the part of the Supervisor that SourceService drives
type watchSet interface {
	IsWatched(key string) bool
	Keys() []string
	Unwatch(ctx context.Context, key string) error
	Watch(source domain.Source) error
}

// SourceService manages the watch list and keeps a running supervisor in
// line with it
type SourceService struct {
	resolver      ports.Resolver
	sessionReader ports.SessionReader
	sourceReader  ports.SourceReader
	sourceWriter  ports.SourceWriter
	watchers      watchSet // nil outside of the run command
}

// NewSourceService creates a SourceService. supervisor may be nil for
// one-shot commands that only edit the watch list.
func NewSourceService(
	sourceReader ports.SourceReader,
	sourceWriter ports.SourceWriter,
	sessionReader ports.SessionReader,
	resolver ports.Resolver,
	supervisor *Supervisor,
) *SourceService {
	s := &SourceService{
		resolver:      resolver,
		sessionReader: sessionReader,
		sourceReader:  sourceReader,
		sourceWriter:  sourceWriter,
	}
	if supervisor != nil {
		s.watchers = supervisor
	}
	return s
}

// AddSource adds a page URL to the watch list. An empty key is derived from
// the URL.
func (s *SourceService) AddSource(ctx context.Context, pageURL, key string, autorecord bool) (*domain.Source, error) {
	pageURL = strings.TrimSpace(pageURL)
	if err := validatePageURL(pageURL); err != nil {
		return nil, err
	}

	if key == "" {
		key = domain.SourceKeyFromURL(pageURL)
	} else {
		key = domain.SanitizeFilename(key)
	}
	if key == "" {
		return nil, fmt.Errorf("cannot derive a source key from %q", pageURL)
	}

	logging.Logger.Info("Adding source", "source", key, "url", pageURL, "autorecord", autorecord)

	source := domain.Source{
		CreatedAt:    time.Now(),
		Key:          key,
		URL:          pageURL,
		WatchEnabled: autorecord,
	}
	if err := s.sourceWriter.AddSource(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to add source: %w", err)
	}

	if autorecord && s.watchers != nil {
		if err := s.watchers.Watch(source); err != nil {
			logging.Logger.Warn("Source added but not watched yet", "source", key, "error", err)
		}
	}
	return &source, nil
}

func validatePageURL(pageURL string) error {
	if pageURL == "" {
		return fmt.Errorf("source URL is required")
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Errorf("invalid source URL %q: %w", pageURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid source URL %q: scheme must be http or https", pageURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid source URL %q: missing host", pageURL)
	}
	return nil
}

// RemoveSource unwatches key and deletes it with its session history
func (s *SourceService) RemoveSource(ctx context.Context, key string) error {
	logging.Logger.Info("Removing source", "source", key)

	if s.watchers != nil {
		if err := s.watchers.Unwatch(ctx, key); err != nil {
			return fmt.Errorf("failed to unwatch %s: %w", key, err)
		}
	}
	if err := s.sourceWriter.DeleteSource(ctx, key); err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}
	return nil
}

// SetAutorecord turns watching of key on or off
func (s *SourceService) SetAutorecord(ctx context.Context, key string, enabled bool) error {
	if err := s.sourceWriter.SetWatchEnabled(ctx, key, enabled); err != nil {
		return fmt.Errorf("failed to update autorecord: %w", err)
	}
	logging.Logger.Info("Autorecord updated", "source", key, "enabled", enabled)

	if s.watchers == nil {
		return nil
	}
	if !enabled {
		return s.watchers.Unwatch(ctx, key)
	}

	source, err := s.sourceReader.GetSource(ctx, key)
	if err != nil {
		return err
	}
	return s.watchers.Watch(*source)
}

// ToggleAutorecord flips watching of key and returns the new value
func (s *SourceService) ToggleAutorecord(ctx context.Context, key string) (bool, error) {
	source, err := s.sourceReader.GetSource(ctx, key)
	if err != nil {
		return false, err
	}
	enabled := !source.WatchEnabled
	return enabled, s.SetAutorecord(ctx, key, enabled)
}

// GetSource returns one source
func (s *SourceService) GetSource(ctx context.Context, key string) (*domain.Source, error) {
	return s.sourceReader.GetSource(ctx, key)
}

// ListSources returns the watch list
func (s *SourceService) ListSources(ctx context.Context) ([]domain.Source, error) {
	return s.sourceReader.ListSources(ctx)
}

// ListSessions returns recorded sessions, newest first
func (s *SourceService) ListSessions(ctx context.Context, filter domain.SessionFilter) ([]domain.Session, error) {
	return s.sessionReader.ListSessions(ctx, filter)
}

// Sync watches every enabled source and unwatches everything else.
// Other processes edit the watch list, so run reconciles periodically.
func (s *SourceService) Sync(ctx context.Context) error {
	if s.watchers == nil {
		return nil
	}

	sources, err := s.sourceReader.ListSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	wanted := make(map[string]bool, len(sources))
	var errs []error
	for _, source := range sources {
		if !source.WatchEnabled {
			continue
		}
		wanted[source.Key] = true
		if s.watchers.IsWatched(source.Key) {
			continue
		}
		if err := s.watchers.Watch(source); err != nil {
			if errors.Is(err, domain.ErrSourceStopping) {
				logging.Logger.Debug("Source still stopping, watching on next sync", "source", source.Key)
				continue
			}
			errs = append(errs, err)
		}
	}

	for _, key := range s.watchers.Keys() {
		if wanted[key] {
			continue
		}
		if err := s.watchers.Unwatch(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Check resolves a source once. keyOrURL is a watched key or a page URL.
func (s *SourceService) Check(ctx context.Context, keyOrURL string) (domain.Source, ports.ResolveResult, error) {
	source, err := s.sourceReader.GetSource(ctx, keyOrURL)
	if err != nil {
		if !errors.Is(err, domain.ErrSourceNotFound) || validatePageURL(keyOrURL) != nil {
			return domain.Source{}, ports.ResolveResult{}, err
		}
		source = &domain.Source{
			Key: domain.SourceKeyFromURL(keyOrURL),
			URL: keyOrURL,
		}
	}

	logging.Logger.Info("Checking source", "source", source.Key, "url", source.URL)
	result, err := s.resolver.Resolve(ctx, *source)
	return *source, result, err
}
