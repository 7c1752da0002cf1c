// Package geo provides the facility locator's geospatial data sources: the
// OpenStreetMap Overpass API as primary and an optional Postgres facility
// directory as alternate.
package geo

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/serjvanilla/go-overpass"

	"github.com/velora-health/patient-assistant/internal/domain/entities"
)

// OverpassSource queries the OpenStreetMap Overpass API for medical
// facilities. No API key is required; requests are bounded by the HTTP
// client timeout.
type OverpassSource struct {
	client  *overpass.Client
	timeout time.Duration
}

// NewOverpassSource creates an Overpass source for the given endpoint
func NewOverpassSource(endpoint string, timeout time.Duration) *OverpassSource {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassSource{
		client:  &client,
		timeout: timeout,
	}
}

// Name implements providers.FacilitySource
func (s *OverpassSource) Name() string {
	return "openstreetmap"
}

// FindMedicalFacilities returns hospital, clinic and doctors nodes and ways
// within the radius. Results are ordered nodes-then-ways by ascending OSM id
// so repeated queries present candidates in the same order.
func (s *OverpassSource) FindMedicalFacilities(ctx context.Context, lat, lng float64, radiusMeters int) ([]entities.FacilityCandidate, error) {
	query := fmt.Sprintf(`
		[out:json][timeout:25];
		(
			node["amenity"="hospital"](around:%d,%f,%f);
			node["amenity"="clinic"](around:%d,%f,%f);
			node["amenity"="doctors"](around:%d,%f,%f);
			way["amenity"="hospital"](around:%d,%f,%f);
			way["amenity"="clinic"](around:%d,%f,%f);
			way["amenity"="doctors"](around:%d,%f,%f);
		);
		out body;
		>;
		out skel qt;
	`,
		radiusMeters, lat, lng,
		radiusMeters, lat, lng,
		radiusMeters, lat, lng,
		radiusMeters, lat, lng,
		radiusMeters, lat, lng,
		radiusMeters, lat, lng)

	// The overpass client does not take a context; the HTTP client timeout
	// bounds the call. Abandoned requests run to completion and are
	// discarded.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	result, err := s.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	return convertResult(&result), nil
}

func convertResult(result *overpass.Result) []entities.FacilityCandidate {
	var candidates []entities.FacilityCandidate

	nodeIDs := make([]int64, 0, len(result.Nodes))
	for id := range result.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })

	for _, id := range nodeIDs {
		node := result.Nodes[id]
		// Skeleton members of ways carry no tags; only tagged
		// amenities are facilities.
		if node.Tags["amenity"] == "" {
			continue
		}
		candidates = append(candidates, candidateFromTags(
			fmt.Sprintf("osm_node_%d", node.ID), node.Lat, node.Lon, node.Tags))
	}

	wayIDs := make([]int64, 0, len(result.Ways))
	for id := range result.Ways {
		wayIDs = append(wayIDs, id)
	}
	sort.Slice(wayIDs, func(i, j int) bool { return wayIDs[i] < wayIDs[j] })

	for _, id := range wayIDs {
		way := result.Ways[id]
		if way.Tags["amenity"] == "" || len(way.Nodes) == 0 {
			continue
		}

		// Ways are areas; use the centroid of their member nodes.
		var lat, lng float64
		for _, node := range way.Nodes {
			lat += node.Lat
			lng += node.Lon
		}
		lat /= float64(len(way.Nodes))
		lng /= float64(len(way.Nodes))

		candidates = append(candidates, candidateFromTags(
			fmt.Sprintf("osm_way_%d", way.ID), lat, lng, way.Tags))
	}

	return candidates
}

func candidateFromTags(placeID string, lat, lng float64, tags map[string]string) entities.FacilityCandidate {
	name := tags["name"]
	if name == "" {
		name = "Unnamed Medical Facility"
	}

	var addressParts []string
	for _, key := range []string{"addr:housenumber", "addr:street", "addr:city"} {
		if v := tags[key]; v != "" {
			addressParts = append(addressParts, v)
		}
	}
	address := "Address not available"
	if len(addressParts) > 0 {
		address = strings.Join(addressParts, ", ")
	}

	return entities.FacilityCandidate{
		PlaceID:      placeID,
		Name:         name,
		Latitude:     lat,
		Longitude:    lng,
		Vicinity:     address,
		Amenity:      tags["amenity"],
		Healthcare:   tags["healthcare"],
		Specialty:    tags["healthcare:speciality"],
		Phone:        tags["phone"],
		Website:      tags["website"],
		OpeningHours: tags["opening_hours"],
	}
}
