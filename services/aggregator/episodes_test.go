package aggregator

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractEpisodes_PicksLargestGroup(t *testing.T) {
	raw := "$https://a.com/1.m3u8(CDN1)$$$$https://a.com/1.m3u8(CDN1)$https://a.com/2.m3u8(CDN2)"

	got := extractEpisodes(raw)
	want := []string{"https://a.com/1.m3u8", "https://a.com/2.m3u8"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractEpisodes_TieKeepsFirstGroup(t *testing.T) {
	raw := "$https://first.com/1.m3u8$$$$https://second.com/1.m3u8"

	got := extractEpisodes(raw)
	want := []string{"https://first.com/1.m3u8"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected first group on tie, got %v", got)
	}
}

func TestExtractEpisodes_DeduplicatesPreservingOrder(t *testing.T) {
	raw := "$https://a.com/2.m3u8$https://a.com/1.m3u8$https://a.com/2.m3u8$https://a.com/3.m3u8"

	got := extractEpisodes(raw)
	want := []string{"https://a.com/2.m3u8", "https://a.com/1.m3u8", "https://a.com/3.m3u8"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtractEpisodes_StripsAnnotations(t *testing.T) {
	raw := "$https://a.com/1.m3u8(高清)$https://a.com/2.m3u8"

	for _, ep := range extractEpisodes(raw) {
		if strings.Contains(ep, "(") || strings.HasPrefix(ep, "$") {
			t.Errorf("episode %q still carries prefix or annotation", ep)
		}
	}
}

func TestExtractEpisodes_MalformedInput(t *testing.T) {
	cases := []string{
		"",
		"no urls here",
		"$$$",
		"$ftp://a.com/1.m3u8",
		"$https://a.com/1.mp4",
		"第01集$第02集",
	}
	for _, raw := range cases {
		if got := extractEpisodes(raw); len(got) != 0 {
			t.Errorf("extractEpisodes(%q) = %v, expected empty", raw, got)
		}
	}
}

func TestExtractEpisodes_Idempotent(t *testing.T) {
	raw := "$https://a.com/1.m3u8(CDN1)$https://a.com/2.m3u8(CDN2)$https://a.com/3.m3u8"
	first := extractEpisodes(raw)
	if len(first) != 3 {
		t.Fatalf("expected 3 episodes, got %v", first)
	}

	// Re-encode the output the way a backend would and run it through again:
	// each URL gets the "$" prefix, groups are joined with the separator.
	var group strings.Builder
	for _, ep := range first {
		group.WriteString("$")
		group.WriteString(ep)
	}
	reencoded := group.String() + groupSeparator + group.String()

	second := extractEpisodes(reencoded)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("not idempotent: first=%v second=%v", first, second)
	}
}

func TestExtractEpisodes_HTTPAndHTTPS(t *testing.T) {
	raw := "$http://a.com/1.m3u8$https://a.com/2.m3u8"
	got := extractEpisodes(raw)
	want := []string{"http://a.com/1.m3u8", "https://a.com/2.m3u8"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
