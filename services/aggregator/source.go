package aggregator

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strings"

	"vodmesh/config"
	"vodmesh/models"
	"vodmesh/utils"
)

// keywordPlaceholder marks where the escaped keyword lands in a source's
// search path template.
const keywordPlaceholder = "{keyword}"

// searchSource runs one keyword search against one backend and returns the
// normalized records in the backend's original order. It never fails outward:
// fetch errors, bad JSON and a missing list field all degrade to an empty
// result with a warning log, so a broken source contributes nothing instead
// of breaking the request.
func (s *Service) searchSource(ctx context.Context, src config.SourceConfig, keyword string) []models.VideoRecord {
	searchURL, err := buildSearchURL(src, keyword)
	if err != nil {
		log.Printf("[aggregator] source %s: bad search url: %v", src.Key, err)
		return nil
	}

	body, err := s.client.fetch(ctx, searchURL, src.Headers)
	if err != nil {
		log.Printf("[aggregator] source %s: search failed: %v", src.Key, err)
		return nil
	}

	var payload struct {
		List []map[string]any `json:"list"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("[aggregator] source %s: malformed response: %v", src.Key, err)
		return nil
	}

	records := make([]models.VideoRecord, 0, len(payload.List))
	for _, raw := range payload.List {
		if rec, ok := normalizeRecord(raw, src); ok {
			records = append(records, rec)
		}
	}
	return records
}

// buildSearchURL joins the source's API base with its search path template,
// substituting the URL-escaped keyword. Templates without a placeholder get
// the keyword appended, which covers the common "?wd=" style endpoints.
func buildSearchURL(src config.SourceConfig, keyword string) (string, error) {
	escaped := url.QueryEscape(keyword)
	path := src.SearchPath
	if strings.Contains(path, keywordPlaceholder) {
		path = strings.ReplaceAll(path, keywordPlaceholder, escaped)
	} else {
		path += escaped
	}
	return utils.EncodeURLWithSpaces(src.API + path)
}
