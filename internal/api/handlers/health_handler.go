package handlers

import (
	"net/http"

	"github.com/velora-health/patient-assistant/internal/domain/providers"
)

// HealthHandler reports service liveness and loaded models
type HealthHandler struct {
	registry *providers.ClassifierRegistry
	version  string
}

// NewHealthHandler creates a health handler
func NewHealthHandler(registry *providers.ClassifierRegistry, version string) *HealthHandler {
	return &HealthHandler{registry: registry, version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"models_loaded": h.registry.Len(),
		"conditions":    h.registry.Conditions(),
	})
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"service": "patient-assistant",
		"version": h.version,
		"status":  "running",
	})
}
