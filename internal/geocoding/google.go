package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/jflam/ai-starter-app-postgis/internal/models"
	"googlemaps.github.io/maps"
)

// locationTypeRooftop marks a result resolved to a precise street address.
const locationTypeRooftop = "ROOFTOP"

var (
	// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
	ErrEmptyResponse = errors.New("get empty response from Google Maps API")
	// ErrEmptyAddress is returned for a blank restaurant address.
	ErrEmptyAddress = errors.New("address is empty")
	// ErrInvalidLocation is returned when the chosen result has no usable coordinates.
	ErrInvalidLocation = errors.New("invalid location in Google Maps response")
)

// GoogleAPIClient is the part of *maps.Client used by GoogleProvider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GoogleProvider geocodes restaurant addresses with the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient
	log    *slog.Logger
}

// NewGoogleProvider wraps a Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode resolves a restaurant address to a point. A rooftop result is
// preferred over approximate ones; otherwise the first result wins.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	best := pickResult(results)
	if best.PartialMatch {
		gp.log.WarnContext(ctx, "Google Maps returned a partial match",
			"address", address, "matched", best.FormattedAddress)
	}

	location := best.Geometry.Location
	if !validLocation(location) {
		return nil, fmt.Errorf("%w: %v,%v", ErrInvalidLocation, location.Lat, location.Lng)
	}

	return &models.Coordinates{Longitude: location.Lng, Latitude: location.Lat}, nil
}

func pickResult(results []maps.GeocodingResult) maps.GeocodingResult {
	for _, result := range results {
		if result.Geometry.LocationType == locationTypeRooftop {
			return result
		}
	}

	return results[0]
}

func validLocation(location maps.LatLng) bool {
	for _, v := range []float64{location.Lat, location.Lng} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return math.Abs(location.Lat) <= 90 && math.Abs(location.Lng) <= 180 &&
		(location.Lat != 0 || location.Lng != 0)
}
