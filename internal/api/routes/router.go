package routes

import (
	"net/http"

	"github.com/velora-health/patient-assistant/internal/api/handlers"
	"github.com/velora-health/patient-assistant/internal/api/middleware"
	"github.com/velora-health/patient-assistant/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	healthHandler         *handlers.HealthHandler
	predictionHandler     *handlers.PredictionHandler
	recommendationHandler *handlers.RecommendationHandler
	hospitalHandler       *handlers.HospitalHandler
	emergencyHandler      *handlers.EmergencyHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router. emergencyHandler may be nil when no alert
// transport is configured; metrics may be nil when observability is disabled.
func NewRouter(
	healthHandler *handlers.HealthHandler,
	predictionHandler *handlers.PredictionHandler,
	recommendationHandler *handlers.RecommendationHandler,
	hospitalHandler *handlers.HospitalHandler,
	emergencyHandler *handlers.EmergencyHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		healthHandler:         healthHandler,
		predictionHandler:     predictionHandler,
		recommendationHandler: recommendationHandler,
		hospitalHandler:       hospitalHandler,
		emergencyHandler:      emergencyHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)
	r.mux.HandleFunc("GET /{$}", r.healthHandler.Root)

	// Risk assessment endpoints
	r.mux.HandleFunc("POST /api/predict/{condition}", r.predictionHandler.Predict)
	r.mux.HandleFunc("GET /api/recommendations/{condition}", r.recommendationHandler.GetRecommendations)

	// Facility endpoints
	r.mux.HandleFunc("GET /api/hospitals/nearby", r.hospitalHandler.FindNearby)

	// Emergency endpoints
	if r.emergencyHandler != nil {
		r.mux.HandleFunc("POST /api/emergency/sos", r.emergencyHandler.SendSOS)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
