package entities

// FacilityCandidate is a care facility returned by a geospatial source.
// PlaceID is the source-stable identity; when a source only supplies names,
// the display name stands in as identity for deduplication.
type FacilityCandidate struct {
	PlaceID      string
	Name         string
	Latitude     float64
	Longitude    float64
	Vicinity     string
	Amenity      string
	Healthcare   string
	Specialty    string
	Phone        string
	Website      string
	OpeningHours string

	// DistanceMeters is computed from the query point by the locator,
	// not by the source.
	DistanceMeters float64
}
