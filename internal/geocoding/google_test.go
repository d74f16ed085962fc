package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/jflam/ai-starter-app-postgis/internal/geocoding"
	"github.com/jflam/ai-starter-app-postgis/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func geocodingResult(lat, lng float64, locationType string) maps.GeocodingResult {
	return maps.GeocodingResult{
		Geometry: maps.AddressGeometry{
			Location:     maps.LatLng{Lat: lat, Lng: lng},
			LocationType: locationType,
		},
	}
}

func TestGeocode(t *testing.T) {
	mockClient := mocks.NewGoogleAPIClient(t)
	provider := geocoding.NewGoogleProvider(mockClient, slog.Default())
	ctx := t.Context()

	t.Run("blank address", func(t *testing.T) {
		coords, err := provider.Geocode(ctx, "   ")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrEmptyAddress)
	})

	t.Run("api returns error", func(t *testing.T) {
		address := "some invalid place"
		req := &maps.GeocodingRequest{Address: address}

		mockClient.On("Geocode", ctx, req).Return(nil, assert.AnError).Once()

		coords, err := provider.Geocode(ctx, address)

		require.Nil(t, coords)
		require.ErrorIs(t, err, assert.AnError)
		mockClient.AssertExpectations(t)
	})

	t.Run("api return empty response", func(t *testing.T) {
		address := "some invalid place"
		req := &maps.GeocodingRequest{Address: address}

		mockClient.On("Geocode", ctx, req).Return(nil, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
		mockClient.AssertExpectations(t)
	})

	t.Run("zero location is rejected", func(t *testing.T) {
		address := "Null Island"
		req := &maps.GeocodingRequest{Address: address}

		mockClient.On("Geocode", ctx, req).
			Return([]maps.GeocodingResult{geocodingResult(0, 0, "APPROXIMATE")}, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrInvalidLocation)
		mockClient.AssertExpectations(t)
	})

	t.Run("rooftop result is preferred", func(t *testing.T) {
		address := "1530 Post Alley, Seattle"
		req := &maps.GeocodingRequest{Address: address}
		response := []maps.GeocodingResult{
			geocodingResult(47.6062, -122.3321, "APPROXIMATE"),
			geocodingResult(47.6097, -122.3421, "ROOFTOP"),
		}

		mockClient.On("Geocode", ctx, req).Return(response, nil).Once()

		coords, err := provider.Geocode(ctx, "  "+address+" ")

		require.NoError(t, err)
		require.NotNil(t, coords)
		require.InEpsilon(t, 47.6097, coords.Latitude, 0.0001)
		require.InEpsilon(t, -122.3421, coords.Longitude, 0.0001)
		mockClient.AssertExpectations(t)
	})

	t.Run("first result without rooftop", func(t *testing.T) {
		address := "Pike Place Market, Seattle"
		req := &maps.GeocodingRequest{Address: address}
		first := geocodingResult(47.6097, -122.3422, "GEOMETRIC_CENTER")
		first.PartialMatch = true

		mockClient.On("Geocode", ctx, req).
			Return([]maps.GeocodingResult{first, geocodingResult(47.0, -122.0, "APPROXIMATE")}, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.NoError(t, err)
		assert.Equal(t, -122.3422, coords.Longitude)
		assert.Equal(t, 47.6097, coords.Latitude)
		mockClient.AssertExpectations(t)
	})
}
