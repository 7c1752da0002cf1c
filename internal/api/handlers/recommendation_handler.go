package handlers

import (
	"net/http"
	"strconv"

	"github.com/velora-health/patient-assistant/internal/application/services"
	"github.com/velora-health/patient-assistant/internal/domain/features"
)

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	engine *services.RecommendationEngine
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(engine *services.RecommendationEngine) *RecommendationHandler {
	return &RecommendationHandler{engine: engine}
}

// GetRecommendations handles GET /api/recommendations/{condition}?risk_score=
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	condition := r.PathValue("condition")
	if condition == "" {
		respondWithError(w, http.StatusBadRequest, "condition is required")
		return
	}
	if !features.Supported(condition) {
		respondWithError(w, http.StatusBadRequest, "unsupported condition: "+condition)
		return
	}

	rawScore := r.URL.Query().Get("risk_score")
	if rawScore == "" {
		respondWithError(w, http.StatusBadRequest, "risk_score query parameter is required")
		return
	}
	score, err := strconv.ParseFloat(rawScore, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "risk_score must be a number")
		return
	}

	set := h.engine.Recommend(condition, score)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"disease":         set.Condition,
		"risk_score":      round2(set.Score),
		"zone":            set.ZoneLabel,
		"risk_level":      set.Band,
		"recommendations": set.Recommendations,
	})
}
