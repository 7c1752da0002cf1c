package geo

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/velora-health/patient-assistant/internal/domain/entities"
	"github.com/velora-health/patient-assistant/internal/infrastructure/clients/postgres"
	apperrors "github.com/velora-health/patient-assistant/pkg/errors"
)

// DirectorySource serves facility lookups from a statically loaded Postgres
// directory. It is the locator's alternate source when the Overpass API is
// unreachable, so its coverage is whatever the directory was seeded with.
type DirectorySource struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDirectorySource creates a directory source over a Postgres client
func NewDirectorySource(client *postgres.Client) *DirectorySource {
	return &DirectorySource{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Name implements providers.FacilitySource
func (s *DirectorySource) Name() string {
	return "facility_directory"
}

type directoryRow struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Latitude     float64 `db:"latitude"`
	Longitude    float64 `db:"longitude"`
	Address      string  `db:"address"`
	Amenity      string  `db:"amenity"`
	Healthcare   string  `db:"healthcare"`
	Specialty    string  `db:"specialty"`
	Phone        string  `db:"phone"`
	Website      string  `db:"website"`
	OpeningHours string  `db:"opening_hours"`
}

// FindMedicalFacilities selects directory rows inside the bounding box that
// circumscribes the radius. The box uses the same degree approximation as
// the locator's distance ranking; the locator re-ranks by exact approximate
// distance afterwards. Ordered by id for a stable source order.
func (s *DirectorySource) FindMedicalFacilities(ctx context.Context, lat, lng float64, radiusMeters int) ([]entities.FacilityCandidate, error) {
	dLat := float64(radiusMeters) / 111000
	dLng := float64(radiusMeters) / (111000 * 0.9)

	query, args, err := s.db.From("medical_facilities").
		Select("id", "name", "latitude", "longitude", "address",
			"amenity", "healthcare", "specialty", "phone", "website", "opening_hours").
		Where(
			goqu.C("latitude").Between(goqu.Range(lat-dLat, lat+dLat)),
			goqu.C("longitude").Between(goqu.Range(lng-dLng, lng+dLng)),
		).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build directory query", err)
	}

	rows, err := s.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to query facility directory", err)
	}
	defer rows.Close()

	var candidates []entities.FacilityCandidate
	for rows.Next() {
		var row directoryRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Latitude, &row.Longitude, &row.Address,
			&row.Amenity, &row.Healthcare, &row.Specialty, &row.Phone,
			&row.Website, &row.OpeningHours,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan directory row", err)
		}

		candidates = append(candidates, entities.FacilityCandidate{
			PlaceID:      row.ID,
			Name:         row.Name,
			Latitude:     row.Latitude,
			Longitude:    row.Longitude,
			Vicinity:     row.Address,
			Amenity:      row.Amenity,
			Healthcare:   row.Healthcare,
			Specialty:    row.Specialty,
			Phone:        row.Phone,
			Website:      row.Website,
			OpeningHours: row.OpeningHours,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to read facility directory rows", err)
	}

	return candidates, nil
}
