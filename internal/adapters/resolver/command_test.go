package resolver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexlevi/webcorder/internal/domain"
)

// TestHelperProcess is not a real test. It plays the resolver tool.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	if d, err := time.ParseDuration(os.Getenv("RESOLVER_SLEEP")); err == nil {
		time.Sleep(d)
	}
	// Echo the page URL argument so tests can check substitution
	if os.Getenv("RESOLVER_ECHO_ARGS") == "1" {
		fmt.Fprintln(os.Stdout, "https://edge.example.com/"+strings.Join(os.Args[len(os.Args)-1:], "")+"/playlist.m3u8")
	}
	fmt.Fprint(os.Stdout, os.Getenv("RESOLVER_STDOUT"))
	fmt.Fprint(os.Stderr, os.Getenv("RESOLVER_STDERR"))
	code, _ := strconv.Atoi(os.Getenv("RESOLVER_EXIT"))
	os.Exit(code)
}

func helperResolver(env ...string) *CommandResolver {
	r := NewCommandResolver([]string{"yt-dlp", "-g", URLPlaceholder}, nil)
	r.newCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(append(os.Environ(), "GO_WANT_HELPER_PROCESS=1"), env...)
		return cmd
	}
	return r
}

var alice = domain.Source{Key: "alice", URL: "alice-room"}

func TestCommandResolverLive(t *testing.T) {
	r := helperResolver("RESOLVER_STDOUT=https://img.example.com/alice.jpg\nhttps://cdn.example.com/alice/chunklist.m3u8\nhttps://edge1.live.example.com/alice/playlist.m3u8\n")

	result, err := r.Resolve(context.Background(), alice)
	require.NoError(t, err)
	assert.True(t, result.Live)
	assert.Equal(t, "https://edge1.live.example.com/alice/playlist.m3u8", result.MediaURL)
	assert.Equal(t, "m3u8", result.Protocol)
}

func TestCommandResolverSubstitutesURL(t *testing.T) {
	r := helperResolver("RESOLVER_ECHO_ARGS=1")

	result, err := r.Resolve(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, "https://edge.example.com/alice-room/playlist.m3u8", result.MediaURL)
}

func TestCommandResolverOffline(t *testing.T) {
	tests := []struct {
		name string
		env  []string
	}{
		{name: "empty output", env: nil},
		{name: "only images", env: []string{"RESOLVER_STDOUT=https://thumb.example.com/alice/live.m3u8\n"}},
		{name: "offline marker on failure", env: []string{"RESOLVER_STDERR=ERROR: [site] alice: Room is currently offline\n", "RESOLVER_EXIT=1"}},
		{name: "not live marker on failure", env: []string{"RESOLVER_STDERR=ERROR: alice: The channel is not currently live\n", "RESOLVER_EXIT=1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := helperResolver(tt.env...).Resolve(context.Background(), alice)
			require.NoError(t, err)
			assert.False(t, result.Live)
			assert.Empty(t, result.MediaURL)
		})
	}
}

func TestCommandResolverErrors(t *testing.T) {
	t.Run("unexplained failure", func(t *testing.T) {
		r := helperResolver("RESOLVER_STDERR=ERROR: Unable to download webpage: HTTP Error 503\n", "RESOLVER_EXIT=1")
		_, err := r.Resolve(context.Background(), alice)
		assert.ErrorIs(t, err, domain.ErrResolve)
		assert.Contains(t, err.Error(), "HTTP Error 503")
	})

	t.Run("timeout is an error, not offline", func(t *testing.T) {
		r := helperResolver("RESOLVER_SLEEP=5s")
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := r.Resolve(ctx, alice)
		assert.ErrorIs(t, err, domain.ErrResolve)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 3*time.Second)
	})

	t.Run("missing tool", func(t *testing.T) {
		r := NewCommandResolver([]string{"/nonexistent/yt-dlp", URLPlaceholder}, nil)
		_, err := r.Resolve(context.Background(), alice)
		assert.ErrorIs(t, err, domain.ErrResolve)
	})

	t.Run("empty command", func(t *testing.T) {
		_, err := NewCommandResolver(nil, nil).Resolve(context.Background(), alice)
		assert.ErrorIs(t, err, domain.ErrResolve)
	})
}
