package geo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/velora-health/patient-assistant/internal/domain/entities"
	"github.com/velora-health/patient-assistant/internal/domain/providers"
)

// cacheTTLSeconds keeps facility results fresh enough for repeat lookups
// from the same neighborhood without hammering the Overpass API.
const cacheTTLSeconds = 300

// CachedSource wraps a FacilitySource with a read-through cache. Cache
// failures degrade to the underlying source; they never fail a lookup.
type CachedSource struct {
	source providers.FacilitySource
	cache  providers.CacheProvider
}

// NewCachedSource wraps source with cache
func NewCachedSource(source providers.FacilitySource, cache providers.CacheProvider) *CachedSource {
	return &CachedSource{source: source, cache: cache}
}

// Name implements providers.FacilitySource
func (s *CachedSource) Name() string {
	return s.source.Name()
}

// FindMedicalFacilities serves from cache when possible
func (s *CachedSource) FindMedicalFacilities(ctx context.Context, lat, lng float64, radiusMeters int) ([]entities.FacilityCandidate, error) {
	key := fmt.Sprintf("facilities:%s:%.4f:%.4f:%d", s.source.Name(), lat, lng, radiusMeters)

	if data, err := s.cache.Get(ctx, key); err == nil && len(data) > 0 {
		var cached []entities.FacilityCandidate
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// A corrupt entry is dropped and refetched.
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to drop corrupt facility cache entry")
		}
	}

	candidates, err := s.source.FindMedicalFacilities(ctx, lat, lng, radiusMeters)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(candidates); err == nil {
		if err := s.cache.Set(ctx, key, data, cacheTTLSeconds); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache facility results")
		}
	}

	return candidates, nil
}
