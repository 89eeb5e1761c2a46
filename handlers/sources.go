package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"vodmesh/models"
	sourcespkg "vodmesh/services/sources"
)

// sourcesService is what the sources handler needs from the registry.
type sourcesService interface {
	Infos() ([]models.SourceInfo, error)
	CheckAll(ctx context.Context) ([]models.SourceStatus, error)
	Reload() error
}

var _ sourcesService = (*sourcespkg.Service)(nil)

type SourcesHandler struct {
	Service sourcesService
}

func NewSourcesHandler(s sourcesService) *SourcesHandler {
	return &SourcesHandler{Service: s}
}

// List serves GET /sources. With ?check=true every source is probed
// concurrently and the response includes reachability and latency.
func (h *SourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	check := strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("check")), "true")

	w.Header().Set("Content-Type", "application/json")

	if check {
		statuses, err := h.Service.CheckAll(r.Context())
		if err != nil {
			log.Printf("[sources] check failed: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		if statuses == nil {
			statuses = []models.SourceStatus{}
		}
		json.NewEncoder(w).Encode(statuses)
		return
	}

	infos, err := h.Service.Infos()
	if err != nil {
		log.Printf("[sources] list failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	if infos == nil {
		infos = []models.SourceInfo{}
	}
	json.NewEncoder(w).Encode(infos)
}

// Reload serves POST /sources/reload: re-reads the sources file so new
// backends apply without a restart.
func (h *SourcesHandler) Reload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.Service.Reload(); err != nil {
		log.Printf("[sources] reload failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "reloaded"})
}
