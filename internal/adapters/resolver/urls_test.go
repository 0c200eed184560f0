package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStreamURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://edge.example.com/live/playlist.m3u8", want: true},
		{url: "https://cdn.example.com/vod/file.mp4", want: true},
		{url: "https://cdn.example.com/stream/abc", want: true},
		{url: "https://cdn.example.com/avatar.jpg", want: false},
		{url: "https://jpeg.live.example.com/stream/alice", want: false},
		{url: "https://preview.example.com/alice/master.m3u8", want: false},
		{url: "https://example.com/alice", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStreamURL(tt.url))
		})
	}
}

func TestProtocol(t *testing.T) {
	assert.Equal(t, "m3u8", Protocol("https://a.example.com/x.m3u8?token=1"))
	assert.Equal(t, "unknown", Protocol("https://a.example.com/x.flv"))
}

func TestRankStreamURLs(t *testing.T) {
	ranked := RankStreamURLs([]string{
		"http://cdn.example.com/alice/stream.flv",
		`https:\/\/edge.example.com\/alice\/playlist.m3u8",`,
		"https://edge.example.com/alice/playlist.m3u8",
		"https://cdn.example.com/alice/thumb.png",
		"short",
		"",
	})

	assert.Equal(t, []string{
		"https://edge.example.com/alice/playlist.m3u8",
		"http://cdn.example.com/alice/stream.flv",
	}, ranked)
}

func TestCleanURL(t *testing.T) {
	assert.Equal(t,
		"https://edge-1.example.com/a/playlist.m3u8",
		cleanURL(`https://edge-1.example.com\/a\/playlist.m3u8"`),
	)
}
