package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"vodmesh/config"
	"vodmesh/models"
	aggregatorpkg "vodmesh/services/aggregator"
)

const (
	defaultCategoryLimit = 25
	defaultHotLimit      = 20
)

// aggregatorService is what the video handler needs from the aggregation core.
type aggregatorService interface {
	Aggregate(ctx context.Context, sources []config.SourceConfig, category string, start, limit int) models.AggregatedPage
	Trending(ctx context.Context, sources []config.SourceConfig, start, limit int) models.AggregatedPage
}

var _ aggregatorService = (*aggregatorpkg.Service)(nil)

// sourceLister supplies the ordered source list for each request. Its error
// is the one failure that reaches callers as code=500.
type sourceLister interface {
	List() ([]config.SourceConfig, error)
}

type VideoHandler struct {
	Aggregator aggregatorService
	Sources    sourceLister
}

func NewVideoHandler(agg aggregatorService, sources sourceLister) *VideoHandler {
	return &VideoHandler{Aggregator: agg, Sources: sources}
}

// Category serves GET /category: full-mode aggregation over every source.
func (h *VideoHandler) Category(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	start := parseIntParam(r, "start", 0)
	limit := parseIntParam(r, "limit", defaultCategoryLimit)

	sources, err := h.Sources.List()
	if err != nil {
		log.Printf("[video] source list unavailable: %v", err)
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if len(sources) == 0 {
		writeEnvelope(w, http.StatusOK, "no sources configured", nil)
		return
	}

	page := h.Aggregator.Aggregate(r.Context(), sources, category, start, limit)
	writeEnvelope(w, http.StatusOK, "ok", page.Items)
}

// Hot serves GET /hot: the trending feed, restricted sources and a looser
// dedup key.
func (h *VideoHandler) Hot(w http.ResponseWriter, r *http.Request) {
	start := parseIntParam(r, "start", 0)
	limit := parseIntParam(r, "limit", defaultHotLimit)

	sources, err := h.Sources.List()
	if err != nil {
		log.Printf("[video] source list unavailable: %v", err)
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if len(sources) == 0 {
		writeEnvelope(w, http.StatusOK, "no sources configured", nil)
		return
	}

	page := h.Aggregator.Trending(r.Context(), sources, start, limit)
	writeEnvelope(w, http.StatusOK, "ok", page.Items)
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func writeEnvelope(w http.ResponseWriter, code int, message string, list []models.VideoRecord) {
	if list == nil {
		list = []models.VideoRecord{}
	}
	w.Header().Set("Content-Type", "application/json")
	if code != http.StatusOK {
		w.WriteHeader(code)
	}
	json.NewEncoder(w).Encode(models.APIResponse{Code: code, Message: message, List: list})
}
