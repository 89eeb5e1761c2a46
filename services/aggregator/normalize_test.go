package aggregator

import (
	"strings"
	"testing"

	"vodmesh/config"
)

var testSource = config.SourceConfig{
	Key:        "heimuer",
	Name:       "黑木耳",
	API:        "https://json.heimuer.tv",
	SearchPath: "/api.php/provide/vod/?ac=videolist&wd=",
}

func TestNormalizeRecord_Complete(t *testing.T) {
	raw := map[string]any{
		"vod_id":       float64(4521),
		"vod_name":     "  流浪   地球  ",
		"vod_pic":      "https://img.example.com/p.jpg",
		"vod_play_url": "第01集$https://cdn.example.com/ep1.m3u8",
		"vod_class":    "科幻,灾难",
		"vod_year":     "2019",
		"vod_content":  "<p>地球<b>流浪</b>记</p>",
		"type_name":    "电影",
	}

	rec, ok := normalizeRecord(raw, testSource)
	if !ok {
		t.Fatal("expected record to be accepted")
	}
	if rec.ID != "4521" {
		t.Errorf("expected id 4521, got %q", rec.ID)
	}
	if rec.Title != "流浪 地球" {
		t.Errorf("expected collapsed title, got %q", rec.Title)
	}
	if len(rec.Episodes) != 1 || rec.Episodes[0] != "https://cdn.example.com/ep1.m3u8" {
		t.Errorf("unexpected episodes %v", rec.Episodes)
	}
	if rec.Year != "2019" {
		t.Errorf("expected year 2019, got %q", rec.Year)
	}
	if rec.Desc != "地球流浪记" {
		t.Errorf("expected stripped description, got %q", rec.Desc)
	}
	if rec.SourceKey != "heimuer" || rec.SourceName != "黑木耳" {
		t.Errorf("provenance not carried: %q/%q", rec.SourceKey, rec.SourceName)
	}
}

func TestNormalizeRecord_RejectsMissingPoster(t *testing.T) {
	raw := map[string]any{
		"vod_id":   "1",
		"vod_name": "有名字没海报",
	}
	if _, ok := normalizeRecord(raw, testSource); ok {
		t.Error("record without poster must be rejected")
	}

	raw["vod_pic"] = "   "
	if _, ok := normalizeRecord(raw, testSource); ok {
		t.Error("record with blank poster must be rejected")
	}
}

func TestNormalizeRecord_TitleSentinel(t *testing.T) {
	raw := map[string]any{
		"vod_pic": "https://img.example.com/p.jpg",
	}
	rec, ok := normalizeRecord(raw, testSource)
	if !ok {
		t.Fatal("record with poster but no name gets the sentinel title")
	}
	if rec.Title != unknownTitle {
		t.Errorf("expected sentinel title, got %q", rec.Title)
	}
}

func TestNormalizeRecord_PlaceholderID(t *testing.T) {
	raw := map[string]any{
		"vod_name": "无编号",
		"vod_pic":  "https://img.example.com/p.jpg",
	}
	rec, ok := normalizeRecord(raw, testSource)
	if !ok {
		t.Fatal("expected record to be accepted")
	}
	if !strings.HasPrefix(rec.ID, "heimuer-") {
		t.Errorf("placeholder id should carry the source key, got %q", rec.ID)
	}
	if len(rec.ID) != len("heimuer-")+9 {
		t.Errorf("placeholder token should be 9 chars, got %q", rec.ID)
	}

	other, _ := normalizeRecord(raw, testSource)
	if other.ID == rec.ID {
		t.Error("two generated ids in one batch should differ")
	}
}

func TestNormalizeRecord_Defaults(t *testing.T) {
	raw := map[string]any{
		"vod_name": "最小记录",
		"vod_pic":  "https://img.example.com/p.jpg",
	}
	rec, ok := normalizeRecord(raw, testSource)
	if !ok {
		t.Fatal("expected record to be accepted")
	}
	if rec.Class != "" || rec.TypeName != "" || rec.Desc != "" {
		t.Errorf("absent fields should default to empty, got class=%q type=%q desc=%q", rec.Class, rec.TypeName, rec.Desc)
	}
	if rec.Year != unknownYear {
		t.Errorf("expected year sentinel, got %q", rec.Year)
	}
	if rec.Episodes == nil || len(rec.Episodes) != 0 {
		t.Errorf("episodes should be an empty list, got %v", rec.Episodes)
	}
}

func TestExtractYear(t *testing.T) {
	cases := map[string]string{
		"2019":       "2019",
		"约2021年上映":   "2021",
		"1998-06-12": "1998",
		"":           unknownYear,
		"未知":         unknownYear,
		"99":         unknownYear,
	}
	for in, want := range cases {
		if got := extractYear(in); got != want {
			t.Errorf("extractYear(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStringField_NumericID(t *testing.T) {
	raw := map[string]any{"vod_id": float64(123456)}
	if got := stringField(raw, "vod_id"); got != "123456" {
		t.Errorf("expected stringified id, got %q", got)
	}
	if got := stringField(raw, "missing"); got != "" {
		t.Errorf("missing key should be empty, got %q", got)
	}
}
