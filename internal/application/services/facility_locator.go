package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/velora-health/patient-assistant/internal/domain/entities"
	"github.com/velora-health/patient-assistant/internal/domain/providers"
	apperrors "github.com/velora-health/patient-assistant/pkg/errors"
)

// DefaultSearchRadiusMeters is used when a caller omits the radius
const DefaultSearchRadiusMeters = 5000

// LocateResult is a ranked facility list plus the source that produced it
type LocateResult struct {
	Facilities []entities.FacilityCandidate
	Source     string
}

// FacilityLocator finds care facilities relevant to a condition near a
// coordinate. It queries the primary geospatial source, deduplicates by
// display name, filters by specialty keywords and ranks by distance. When the
// primary source fails it tries at most one alternate source before
// surfacing a GeoSourceError; it never disguises a failure as an empty list.
type FacilityLocator struct {
	primary  providers.FacilitySource
	fallback providers.FacilitySource
	keywords map[string][]string
}

// NewFacilityLocator creates a locator. fallback may be nil when no alternate
// source is configured.
func NewFacilityLocator(primary, fallback providers.FacilitySource, keywords map[string][]string) *FacilityLocator {
	return &FacilityLocator{
		primary:  primary,
		fallback: fallback,
		keywords: keywords,
	}
}

// Locate returns facilities within radiusMeters of (lat, lng) relevant to
// condition, sorted ascending by approximate distance with source order
// breaking ties.
func (l *FacilityLocator) Locate(ctx context.Context, lat, lng float64, condition string, radiusMeters int) (*LocateResult, error) {
	if radiusMeters <= 0 {
		radiusMeters = DefaultSearchRadiusMeters
	}

	candidates, source, err := l.query(ctx, lat, lng, radiusMeters)
	if err != nil {
		return nil, err
	}

	keywords := l.keywords[strings.ToLower(condition)]

	results := make([]entities.FacilityCandidate, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		// First-seen wins: sources return deterministic order, so the
		// dedup is stable across calls.
		if _, dup := seen[c.Name]; dup {
			continue
		}
		if !matchesSpecialty(c, keywords) {
			continue
		}
		c.DistanceMeters = approxDistanceMeters(lat, lng, c.Latitude, c.Longitude)
		results = append(results, c)
		seen[c.Name] = struct{}{}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})

	return &LocateResult{Facilities: results, Source: source}, nil
}

func (l *FacilityLocator) query(ctx context.Context, lat, lng float64, radiusMeters int) ([]entities.FacilityCandidate, string, error) {
	candidates, err := l.primary.FindMedicalFacilities(ctx, lat, lng, radiusMeters)
	if err == nil {
		return candidates, l.primary.Name(), nil
	}

	if l.fallback == nil {
		return nil, "", apperrors.NewGeoSourceError("facility data source unavailable", err)
	}

	log.Warn().Err(err).
		Str("source", l.primary.Name()).
		Str("fallback", l.fallback.Name()).
		Msg("primary facility source failed, trying alternate")

	candidates, fbErr := l.fallback.FindMedicalFacilities(ctx, lat, lng, radiusMeters)
	if fbErr != nil {
		return nil, "", apperrors.NewGeoSourceError("all facility data sources unavailable", fbErr)
	}
	return candidates, l.fallback.Name(), nil
}

// matchesSpecialty applies the heuristic keyword filter. A facility passes if
// its name, specialty or healthcare tag contains any configured keyword, or
// if it is tagged as a general hospital: hospitals can treat any condition,
// so they are never filtered out. With no keywords configured everything
// passes.
func matchesSpecialty(c entities.FacilityCandidate, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	if c.Amenity == "hospital" {
		return true
	}

	name := strings.ToLower(c.Name)
	specialty := strings.ToLower(c.Specialty)
	healthcare := strings.ToLower(c.Healthcare)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if strings.Contains(name, kw) || strings.Contains(specialty, kw) || strings.Contains(healthcare, kw) {
			return true
		}
	}
	return false
}

// approxDistanceMeters is a flat-plane degree approximation (1 degree of
// latitude as 111km, longitude compressed by 0.9). It only feeds ranking and
// display over short ranges, not navigation, so geodesic accuracy is not
// required.
func approxDistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * 111000
	dLng := (lng2 - lng1) * 111000 * 0.9
	return math.Sqrt(dLat*dLat + dLng*dLng)
}
