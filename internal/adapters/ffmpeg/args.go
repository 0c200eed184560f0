package ffmpeg

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/plexlevi/webcorder/internal/ports"
)

// UserAgent is sent to stream hosts that reject non-browser clients
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124 Safari/537.36"

// BuildArgs returns the ffmpeg arguments that copy req.MediaURL into
// req.OutputPath without re-encoding
func BuildArgs(req ports.CaptureRequest) []string {
	args := []string{
		"-hide_banner",
		"-nostats",
		"-loglevel", "error",
		"-fflags", "+genpts",
		"-avoid_negative_ts", "make_zero",
		"-async", "1",
		"-y",
	}

	if isHTTP(req.MediaURL) {
		args = append(args,
			"-reconnect", "1",
			"-reconnect_streamed", "1",
			"-reconnect_at_eof", "1",
			"-reconnect_delay_max", "30",
			"-rw_timeout", "60000000",
			"-headers", buildHeaders(req.PageURL),
		)
	}

	if strings.Contains(req.MediaURL, ".m3u8") {
		args = append(args, "-analyzeduration", "10M", "-probesize", "10M")
	}

	args = append(args,
		"-i", req.MediaURL,
		"-map", "0:v:0",
		"-map", "0:a:0?",
		"-c:v", "copy",
		"-copyts",
		"-c:a", "copy",
	)

	if strings.EqualFold(filepath.Ext(req.OutputPath), ".mp4") {
		// Fragmented MP4 stays playable when the process dies mid-stream
		args = append(args,
			"-tag:v", "avc1",
			"-tag:a", "mp4a",
			"-bsf:a", "aac_adtstoasc",
			"-movflags", "+faststart+frag_keyframe+empty_moov+default_base_moof",
			"-frag_duration", "1000000",
			"-min_frag_duration", "1000000",
		)
	} else {
		args = append(args, "-tag:v", "0", "-tag:a", "0")
	}

	return append(args, req.OutputPath)
}

func isHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// buildHeaders formats request headers the way ffmpeg expects them:
// CRLF separated, with a trailing CRLF
func buildHeaders(pageURL string) string {
	var b strings.Builder
	if pageURL != "" {
		b.WriteString("Referer: " + pageURL + "\r\n")
	}
	b.WriteString("User-Agent: " + UserAgent + "\r\n")
	return b.String()
}
