package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/velora-health/patient-assistant/internal/api/handlers"
	"github.com/velora-health/patient-assistant/internal/application/services"
	"github.com/velora-health/patient-assistant/internal/domain/entities"
	apperrors "github.com/velora-health/patient-assistant/pkg/errors"
)

// Mocks

type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) Locate(ctx context.Context, lat, lng float64, condition string, radiusMeters int) (*services.LocateResult, error) {
	args := m.Called(ctx, lat, lng, condition, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LocateResult), args.Error(1)
}

func hospitalMux(locator handlers.HospitalLocator) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/hospitals/nearby", handlers.NewHospitalHandler(locator).FindNearby)
	return mux
}

func TestFindNearbyEndpoint(t *testing.T) {
	locator := new(MockLocator)
	locator.On("Locate", mock.Anything, 6.52, 3.37, "heart", 5000).Return(&services.LocateResult{
		Source: "openstreetmap",
		Facilities: []entities.FacilityCandidate{
			{
				PlaceID:        "osm_node_1",
				Name:           "City Cardiology Centre",
				Latitude:       6.521,
				Longitude:      3.371,
				Vicinity:       "12 Marina Road, Lagos",
				Amenity:        "clinic",
				DistanceMeters: 1234,
			},
		},
	}, nil)

	mux := hospitalMux(locator)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby?lat=6.52&lng=3.37&condition=heart", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Disease      string                   `json:"disease"`
		Location     map[string]float64       `json:"location"`
		RadiusMeters int                      `json:"radius_meters"`
		Hospitals    []map[string]interface{} `json:"hospitals"`
		Count        int                      `json:"count"`
		Source       string                   `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "heart", resp.Disease)
	assert.Equal(t, 6.52, resp.Location["lat"])
	assert.Equal(t, 5000, resp.RadiusMeters)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "openstreetmap", resp.Source)
	require.Len(t, resp.Hospitals, 1)
	assert.Equal(t, "City Cardiology Centre", resp.Hospitals[0]["name"])
	assert.Equal(t, 1.23, resp.Hospitals[0]["distance_km"])
	locator.AssertExpectations(t)
}

func TestFindNearbyCustomRadius(t *testing.T) {
	locator := new(MockLocator)
	locator.On("Locate", mock.Anything, 6.52, 3.37, "", 10000).Return(&services.LocateResult{Source: "openstreetmap"}, nil)

	mux := hospitalMux(locator)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby?lat=6.52&lng=3.37&radius=10000", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	locator.AssertExpectations(t)
}

func TestFindNearbyMissingCoordinates(t *testing.T) {
	mux := hospitalMux(new(MockLocator))

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby?lng=3.37", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "lat")
}

func TestFindNearbyCoordinatesOutOfRange(t *testing.T) {
	mux := hospitalMux(new(MockLocator))

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby?lat=95&lng=3.37", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindNearbyInvalidRadius(t *testing.T) {
	mux := hospitalMux(new(MockLocator))

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby?lat=6.52&lng=3.37&radius=-5", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindNearbySourcesUnavailable(t *testing.T) {
	locator := new(MockLocator)
	locator.On("Locate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewGeoSourceError("all facility data sources unavailable", nil))

	mux := hospitalMux(locator)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby?lat=6.52&lng=3.37", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp struct {
		Error        string   `json:"error"`
		Instructions []string `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Instructions)
}

func TestFindNearbyEmptyResultIsOK(t *testing.T) {
	locator := new(MockLocator)
	locator.On("Locate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&services.LocateResult{Source: "openstreetmap"}, nil)

	mux := hospitalMux(locator)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby?lat=6.52&lng=3.37", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp["count"])
}
