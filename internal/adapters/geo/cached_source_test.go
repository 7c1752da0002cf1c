package geo_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/velora-health/patient-assistant/internal/adapters/geo"
	"github.com/velora-health/patient-assistant/internal/domain/entities"
)

// Mocks

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FindMedicalFacilities(ctx context.Context, lat, lng float64, radiusMeters int) ([]entities.FacilityCandidate, error) {
	args := m.Called(ctx, lat, lng, radiusMeters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.FacilityCandidate), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	args := m.Called(ctx, key, value, expirationSeconds)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func sampleFacilities() []entities.FacilityCandidate {
	return []entities.FacilityCandidate{
		{PlaceID: "osm_node_1", Name: "City Hospital", Amenity: "hospital"},
	}
}

func TestCachedSourceMissFetchesAndStores(t *testing.T) {
	source := new(MockSource)
	source.On("FindMedicalFacilities", mock.Anything, 6.52, 3.37, 5000).Return(sampleFacilities(), nil)

	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("key not found"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, 300).Return(nil)

	cached := geo.NewCachedSource(source, cache)

	result, err := cached.FindMedicalFacilities(context.Background(), 6.52, 3.37, 5000)

	require.NoError(t, err)
	assert.Equal(t, sampleFacilities(), result)
	source.AssertNumberOfCalls(t, "FindMedicalFacilities", 1)
	cache.AssertExpectations(t)
}

func TestCachedSourceHitSkipsSource(t *testing.T) {
	data, err := json.Marshal(sampleFacilities())
	require.NoError(t, err)

	source := new(MockSource)

	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return(data, nil)

	cached := geo.NewCachedSource(source, cache)

	result, err := cached.FindMedicalFacilities(context.Background(), 6.52, 3.37, 5000)

	require.NoError(t, err)
	assert.Equal(t, sampleFacilities(), result)
	source.AssertNotCalled(t, "FindMedicalFacilities")
}

func TestCachedSourceCorruptEntryIsDropped(t *testing.T) {
	source := new(MockSource)
	source.On("FindMedicalFacilities", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(sampleFacilities(), nil)

	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return([]byte("{garbage"), nil)
	cache.On("Delete", mock.Anything, mock.Anything).Return(nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	cached := geo.NewCachedSource(source, cache)

	result, err := cached.FindMedicalFacilities(context.Background(), 6.52, 3.37, 5000)

	require.NoError(t, err)
	assert.Len(t, result, 1)
	cache.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCachedSourceSetFailureStillReturnsResults(t *testing.T) {
	source := new(MockSource)
	source.On("FindMedicalFacilities", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(sampleFacilities(), nil)

	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("key not found"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	cached := geo.NewCachedSource(source, cache)

	result, err := cached.FindMedicalFacilities(context.Background(), 6.52, 3.37, 5000)

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestCachedSourceSourceErrorPropagates(t *testing.T) {
	source := new(MockSource)
	source.On("FindMedicalFacilities", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("overpass timeout"))

	cache := new(MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("key not found"))

	cached := geo.NewCachedSource(source, cache)

	_, err := cached.FindMedicalFacilities(context.Background(), 6.52, 3.37, 5000)
	assert.Error(t, err)
}
