package ffmpeg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plexlevi/webcorder/internal/ports"
)

func indexOf(args []string, flag string) int {
	for i, a := range args {
		if a == flag {
			return i
		}
	}
	return -1
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name        string
		req         ports.CaptureRequest
		contains    []string
		notContains []string
	}{
		{
			name: "hls into mp4",
			req: ports.CaptureRequest{
				MediaURL:   "https://cdn.example.com/alice/playlist.m3u8",
				OutputPath: "/rec/alice/alice_20260301_200000.mp4",
				PageURL:    "https://example.com/alice",
			},
			contains: []string{"-reconnect_streamed", "-headers", "-analyzeduration", "aac_adtstoasc", "avc1"},
		},
		{
			name: "flv into mkv",
			req: ports.CaptureRequest{
				MediaURL:   "http://cdn.example.com/live.flv",
				OutputPath: "/rec/bob/bob.mkv",
			},
			contains:    []string{"-reconnect", "-tag:v"},
			notContains: []string{"-analyzeduration", "aac_adtstoasc", "-movflags"},
		},
		{
			name: "local file input",
			req: ports.CaptureRequest{
				MediaURL:   "/tmp/input.ts",
				OutputPath: "/rec/carol/carol.mkv",
			},
			notContains: []string{"-reconnect", "-headers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := BuildArgs(tt.req)

			for _, flag := range tt.contains {
				assert.Contains(t, args, flag)
			}
			for _, flag := range tt.notContains {
				assert.NotContains(t, args, flag)
			}

			// Input comes before stream mapping, output path is last
			in := indexOf(args, "-i")
			assert.Equal(t, tt.req.MediaURL, args[in+1])
			assert.Less(t, in, indexOf(args, "-map"))
			assert.Equal(t, tt.req.OutputPath, args[len(args)-1])
			assert.Contains(t, args, "copy")
		})
	}
}

func TestBuildArgsHeaders(t *testing.T) {
	args := BuildArgs(ports.CaptureRequest{
		MediaURL:   "https://cdn.example.com/alice/playlist.m3u8",
		OutputPath: "/rec/alice.mp4",
		PageURL:    "https://example.com/alice",
	})

	headers := args[indexOf(args, "-headers")+1]
	assert.True(t, strings.HasPrefix(headers, "Referer: https://example.com/alice\r\n"))
	assert.Contains(t, headers, "User-Agent: "+UserAgent)
	assert.True(t, strings.HasSuffix(headers, "\r\n"))
	// Input options precede -i
	assert.Less(t, indexOf(args, "-analyzeduration"), indexOf(args, "-i"))
}

func TestIsNoise(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{line: "[hls @ 0x1] Will reconnect at 1234 in 0 second(s)", want: true},
		{line: "[https @ 0x2] HTTP error 404 Not Found", want: true},
		{line: "[hls @ 0x3] Failed to open segment 42 of playlist 0", want: true},
		{line: "[hls @ 0x4] skipping 3 segments ahead, expired from playlists", want: true},
		{line: "No trailing CRLF found in HTTP header.", want: true},
		{line: "   ", want: true},
		{line: "Connection timed out", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, isNoise(tt.line))
		})
	}
}

func TestRing(t *testing.T) {
	r := newRing(3)
	assert.Empty(t, r.snapshot())
	assert.Equal(t, "", r.last())

	r.add("a")
	r.add("b")
	assert.Equal(t, []string{"a", "b"}, r.snapshot())

	r.add("c")
	r.add("d")
	assert.Equal(t, []string{"b", "c", "d"}, r.snapshot())
	assert.Equal(t, "d", r.last())
}
