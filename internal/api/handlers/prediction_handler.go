package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/velora-health/patient-assistant/internal/application/services"
	"github.com/velora-health/patient-assistant/internal/domain/entities"
	"github.com/velora-health/patient-assistant/internal/infrastructure/observability"
)

// PredictionHandler handles risk prediction HTTP requests
type PredictionHandler struct {
	validator *services.FeatureValidator
	predictor *services.RiskPredictor
	zones     *services.ZoneClassifier
	metrics   *observability.Metrics
}

// NewPredictionHandler creates a new prediction handler. metrics may be nil
// when observability is disabled.
func NewPredictionHandler(validator *services.FeatureValidator, predictor *services.RiskPredictor, zones *services.ZoneClassifier, metrics *observability.Metrics) *PredictionHandler {
	return &PredictionHandler{
		validator: validator,
		predictor: predictor,
		zones:     zones,
		metrics:   metrics,
	}
}

// Predict handles POST /api/predict/{condition}
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	condition := r.PathValue("condition")
	if condition == "" {
		respondWithError(w, http.StatusBadRequest, "condition is required")
		return
	}

	var payload entities.FeatureMap
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "request body must be a JSON object of features")
		return
	}

	result := h.validator.Validate(condition, payload)
	if !result.Valid {
		switch result.Reason {
		case entities.ReasonUnknownCondition:
			respondWithError(w, http.StatusBadRequest, "unsupported condition: "+condition)
		case entities.ReasonMissingFields:
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":             "missing required features",
				"missing_features":  result.Missing,
				"expected_features": result.Expected,
			})
		default:
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":             "all features must be numeric",
				"expected_features": result.Expected,
			})
		}
		return
	}

	score, err := h.predictor.Predict(r.Context(), condition, result.Values)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	zone := h.zones.Zone(score.Value)
	if h.metrics != nil {
		observability.RecordPrediction(r.Context(), h.metrics, condition, string(zone))
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"disease":       condition,
		"risk_score":    round2(score.Value),
		"zone":          zone,
		"features_used": result.Expected,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
