package providers

import (
	"context"

	"github.com/velora-health/patient-assistant/internal/domain/entities"
)

// FacilitySource is a geospatial data source for medical facilities.
// Implementations must return candidates in a deterministic order so the
// locator's first-seen deduplication is stable across calls.
type FacilitySource interface {
	// Name identifies the source in responses and logs
	Name() string

	// FindMedicalFacilities returns hospitals, clinics and doctors' offices
	// within radiusMeters of the query point. Distances are left unset.
	FindMedicalFacilities(ctx context.Context, lat, lng float64, radiusMeters int) ([]entities.FacilityCandidate, error)
}
