package resolver

import (
	"sort"
	"strings"
)

var (
	imageExtensions    = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}
	imageHosts         = []string{"jpeg.live.", "jpg.live.", "png.live.", "img.", "image.", "thumb.", "preview."}
	streamingIndicator = []string{".m3u8", ".mp4", ".flv", ".webm", ".mkv", "playlist", "master", "stream"}
)

// IsStreamURL reports whether raw points at playable media rather than a
// thumbnail or an unrelated page
func IsStreamURL(raw string) bool {
	lower := strings.ToLower(raw)
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return false
		}
	}
	for _, host := range imageHosts {
		if strings.Contains(lower, host) {
			return false
		}
	}
	for _, indicator := range streamingIndicator {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// Protocol classifies a media URL
func Protocol(mediaURL string) string {
	if strings.Contains(mediaURL, ".m3u8") {
		return "m3u8"
	}
	return "unknown"
}

// cleanURL undoes the escaping found in URLs scraped from page JSON
func cleanURL(raw string) string {
	u := strings.TrimSpace(raw)
	u = strings.TrimRight(u, `",'`)
	u = strings.TrimSuffix(u, `\u0022`)
	u = strings.TrimSuffix(u, `\"`)
	u = strings.TrimSuffix(u, `"`)

	replacer := strings.NewReplacer(
		`\u002D`, "-",
		`\u002d`, "-",
		`\u002F`, "/",
		`\u003A`, ":",
		`\/`, "/",
	)
	return strings.TrimRight(replacer.Replace(u), `\`)
}

// priority ranks stream URLs; higher is better
func priority(u string) int {
	score := 0
	if strings.Contains(u, ".m3u8") {
		score += 100
	}
	if strings.Contains(u, "playlist") {
		score += 50
	}
	if strings.Contains(u, "master") {
		score += 40
	}
	if strings.Contains(u, "edge") {
		score += 30
	}
	if strings.Contains(u, ".live.") {
		score += 20
	}
	if strings.HasPrefix(u, "https://") {
		score += 10
	}
	return score
}

// RankStreamURLs cleans candidates, drops invalid and duplicate ones and
// orders the rest best first
func RankStreamURLs(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	var urls []string
	for _, c := range candidates {
		u := cleanURL(c)
		if len(u) < 10 || !strings.HasPrefix(u, "http") || !IsStreamURL(u) || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}

	sort.SliceStable(urls, func(i, j int) bool {
		return priority(urls[i]) > priority(urls[j])
	})
	return urls
}
