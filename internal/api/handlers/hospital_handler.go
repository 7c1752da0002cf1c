package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/velora-health/patient-assistant/internal/application/services"
)

// HospitalLocator is the locator surface the handler depends on
type HospitalLocator interface {
	Locate(ctx context.Context, lat, lng float64, condition string, radiusMeters int) (*services.LocateResult, error)
}

// HospitalHandler handles nearby facility HTTP requests
type HospitalHandler struct {
	locator HospitalLocator
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(locator HospitalLocator) *HospitalHandler {
	return &HospitalHandler{locator: locator}
}

// FindNearby handles GET /api/hospitals/nearby?lat=&lng=&condition=&radius=
func (h *HospitalHandler) FindNearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lat query parameter is required and must be a number")
		return
	}
	lng, err := strconv.ParseFloat(query.Get("lng"), 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lng query parameter is required and must be a number")
		return
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		respondWithError(w, http.StatusBadRequest, "coordinates out of range")
		return
	}

	radius := services.DefaultSearchRadiusMeters
	if raw := query.Get("radius"); raw != "" {
		radius, err = strconv.Atoi(raw)
		if err != nil || radius <= 0 {
			respondWithError(w, http.StatusBadRequest, "radius must be a positive integer of meters")
			return
		}
	}

	condition := query.Get("condition")

	result, err := h.locator.Locate(r.Context(), lat, lng, condition, radius)
	if err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"error": "facility lookup is temporarily unavailable",
			"instructions": []string{
				"Call your local emergency number if this is urgent",
				"Search for nearby hospitals in your maps application",
				"Retry this request in a few minutes",
			},
		})
		return
	}

	hospitals := make([]map[string]interface{}, 0, len(result.Facilities))
	for _, f := range result.Facilities {
		hospitals = append(hospitals, map[string]interface{}{
			"place_id":      f.PlaceID,
			"name":          f.Name,
			"lat":           f.Latitude,
			"lng":           f.Longitude,
			"vicinity":      f.Vicinity,
			"amenity":       f.Amenity,
			"distance_km":   round2(f.DistanceMeters / 1000),
			"phone":         f.Phone,
			"website":       f.Website,
			"opening_hours": f.OpeningHours,
		})
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"disease":       condition,
		"location":      map[string]float64{"lat": lat, "lng": lng},
		"radius_meters": radius,
		"hospitals":     hospitals,
		"count":         len(hospitals),
		"source":        result.Source,
	})
}
