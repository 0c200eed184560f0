package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/plexlevi/webcorder/internal/domain"
	"github.com/plexlevi/webcorder/internal/logging"
	"github.com/plexlevi/webcorder/internal/ports"
)

// URLPlaceholder is replaced by the source page URL in command templates
const URLPlaceholder = "{url}"

// DefaultOfflineMarkers are lower-case fragments of resolver output that
// mean the source is not broadcasting
var DefaultOfflineMarkers = []string{
	"is offline",
	"not currently live",
	"not live",
	"no video formats found",
	"private show",
	"room is currently offline",
	"will begin in",
}

// CommandResolver asks an external tool such as yt-dlp for the media URL
type CommandResolver struct {
	argv           []string
	newCommand     func(ctx context.Context, name string, args ...string) *exec.Cmd
	offlineMarkers []string
}

// Verify interface compliance at compile time
var _ ports.Resolver = (*CommandResolver)(nil)

// NewCommandResolver creates a resolver running argv, in which
// URLPlaceholder stands for the page URL
func NewCommandResolver(argv []string, offlineMarkers []string) *CommandResolver {
	if len(offlineMarkers) == 0 {
		offlineMarkers = DefaultOfflineMarkers
	}
	markers := make([]string, 0, len(offlineMarkers))
	for _, m := range offlineMarkers {
		markers = append(markers, strings.ToLower(m))
	}
	return &CommandResolver{
		argv:           argv,
		newCommand:     exec.CommandContext,
		offlineMarkers: markers,
	}
}

// Resolve runs the command. Timeouts and unexplained failures are errors,
// never offline answers.
func (r *CommandResolver) Resolve(ctx context.Context, source domain.Source) (ports.ResolveResult, error) {
	if len(r.argv) == 0 {
		return ports.ResolveResult{}, fmt.Errorf("%w: no resolver command configured", domain.ErrResolve)
	}

	args := make([]string, 0, len(r.argv)-1)
	for _, a := range r.argv[1:] {
		args = append(args, strings.ReplaceAll(a, URLPlaceholder, source.URL))
	}

	var stdout, stderr bytes.Buffer
	cmd := r.newCommand(ctx, r.argv[0], args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	runErr := cmd.Run()
	logging.Logger.Debug("Resolver finished",
		"source", source.Key,
		"duration", time.Since(start),
		"error", runErr,
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ports.ResolveResult{}, fmt.Errorf("%w: %s: %w", domain.ErrResolve, source.Key, ctxErr)
	}

	output := stdout.String() + "\n" + stderr.String()
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) && r.isOffline(output) {
			return ports.ResolveResult{Live: false}, nil
		}
		return ports.ResolveResult{}, fmt.Errorf("%w: %s: %w: %s", domain.ErrResolve, source.Key, runErr, firstLine(stderr.String()))
	}

	urls := RankStreamURLs(strings.Split(stdout.String(), "\n"))
	if len(urls) == 0 {
		return ports.ResolveResult{Live: false}, nil
	}

	return ports.ResolveResult{
		Live:     true,
		MediaURL: urls[0],
		Protocol: Protocol(urls[0]),
	}, nil
}

func (r *CommandResolver) isOffline(output string) bool {
	lower := strings.ToLower(output)
	for _, marker := range r.offlineMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
