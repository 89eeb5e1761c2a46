package aggregator

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"vodmesh/config"
	"vodmesh/models"
	"vodmesh/utils"
)

// unknownTitle is the sentinel used when a backend record carries no name at
// all. Records that end up with an empty title are rejected outright, so the
// sentinel only survives for records whose name field exists but is junk.
const (
	unknownTitle = "未知标题"
	unknownYear  = "unknown"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	yearPattern   = regexp.MustCompile(`\d{4}`)
)

// normalizeRecord projects one loosely-typed CMS record into a VideoRecord.
// The second return is false when the record is rejected: no usable title or
// no poster image. Every other missing field degrades to an empty default.
func normalizeRecord(raw map[string]any, src config.SourceConfig) (models.VideoRecord, bool) {
	title := strings.TrimSpace(stringField(raw, "vod_name"))
	if title == "" {
		title = unknownTitle
	}
	title = whitespaceRun.ReplaceAllString(title, " ")

	rec := models.VideoRecord{
		ID:         stringField(raw, "vod_id"),
		Title:      title,
		Poster:     strings.TrimSpace(stringField(raw, "vod_pic")),
		Episodes:   extractEpisodes(stringField(raw, "vod_play_url")),
		SourceKey:  src.Key,
		SourceName: src.Name,
		Class:      stringField(raw, "vod_class"),
		Year:       extractYear(stringField(raw, "vod_year")),
		Desc:       utils.StripHTML(stringField(raw, "vod_content")),
		TypeName:   stringField(raw, "type_name"),
	}

	if rec.Title == "" || rec.Poster == "" {
		return models.VideoRecord{}, false
	}
	if rec.ID == "" {
		rec.ID = src.Key + "-" + randomToken(9)
	}
	if rec.Episodes == nil {
		rec.Episodes = []string{}
	}
	return rec, true
}

// extractYear returns the first 4-digit run in the field, or the sentinel.
func extractYear(field string) string {
	if year := yearPattern.FindString(field); year != "" {
		return year
	}
	return unknownYear
}

// stringField stringifies a raw backend value. CMS backends are sloppy about
// types: ids arrive as numbers or strings depending on the deployment.
func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomToken builds a short base36 token for records the backend shipped
// without an id. Uniqueness only needs to hold within one response batch.
func randomToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	return string(b)
}
