package aggregator

import (
	"regexp"
	"strings"
)

// episodeURLPattern matches one "$"-prefixed HLS URL inside a playback group,
// non-greedy so annotations and neighboring URLs are left alone.
var episodeURLPattern = regexp.MustCompile(`\$https?://[^"'\s$]+?\.m3u8`)

// CMS backends encode playback URLs as alternate groups separated by "$$$";
// inside a group each stream URL is prefixed with "$" and may carry a
// parenthetical annotation, e.g. "$https://host/ep1.m3u8(CDN1)".
const groupSeparator = "$$$"

// extractEpisodes turns a raw vod_play_url field into the canonical ordered
// list of stream URLs. It picks the alternate group with the most playable
// URLs (ties go to the earliest group), drops duplicates keeping first-seen
// order, and strips the "$" prefix and any trailing annotation. Malformed
// input yields an empty list, never an error.
func extractEpisodes(raw string) []string {
	if raw == "" {
		return nil
	}

	var best []string
	for _, group := range strings.Split(raw, groupSeparator) {
		matches := episodeURLPattern.FindAllString(group, -1)
		if len(matches) > len(best) {
			best = matches
		}
	}
	if len(best) == 0 {
		return nil
	}

	episodes := make([]string, 0, len(best))
	seen := make(map[string]bool, len(best))
	for _, m := range best {
		if seen[m] {
			continue
		}
		seen[m] = true
		episodes = append(episodes, cleanEpisodeURL(m))
	}
	return episodes
}

// cleanEpisodeURL strips the leading "$" and truncates at the first "(" so
// annotations like "(CDN1)" never leak into the URL.
func cleanEpisodeURL(m string) string {
	m = strings.TrimPrefix(m, "$")
	if idx := strings.Index(m, "("); idx > 0 {
		m = m[:idx]
	}
	return m
}
