package cmd

import (
	"context"
	"fmt"

	"github.com/plexlevi/webcorder/internal/domain"
)

// StatusCmd prints persisted counts for status bars
type StatusCmd struct{}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	ctx := context.Background()
	rec, watched, offline := domain.StateRecording.Symbol(), domain.StateChecking.Symbol(), domain.StateOffline.Symbol()

	sources, err := cli.Container.SourceService.ListSources(ctx)
	if err != nil {
		fmt.Printf("%s:? %s:? %s:?", rec, watched, offline)
		return nil
	}
	active, err := cli.Container.SourceService.ListSessions(ctx, domain.SessionFilter{ActiveOnly: true})
	if err != nil {
		fmt.Printf("%s:? %s:? %s:?", rec, watched, offline)
		return nil
	}

	fmt.Println(formatStatusLine(sources, active))
	return nil
}

// formatStatusLine renders recording, watched and last-seen-offline counts
func formatStatusLine(sources []domain.Source, active []domain.Session) string {
	watchedCount, offlineCount := 0, 0
	for _, src := range sources {
		if !src.WatchEnabled {
			continue
		}
		watchedCount++
		if !src.LastPolledAt.IsZero() && !src.LastLive {
			offlineCount++
		}
	}

	return fmt.Sprintf("%s:%d %s:%d %s:%d",
		domain.StateRecording.Symbol(), len(active),
		domain.StateChecking.Symbol(), watchedCount,
		domain.StateOffline.Symbol(), offlineCount)
}
