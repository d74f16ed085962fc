// Package validation turns raw query parameters into typed queries.
package validation

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/jflam/ai-starter-app-postgis/internal/apperror"
	"github.com/jflam/ai-starter-app-postgis/internal/models"
)

// DefaultRadiusKM is the search radius used when the km parameter is absent.
const DefaultRadiusKM = 5

// Query parameter names accepted by the nearby endpoint.
const (
	ParamLon    = "lon"
	ParamLat    = "lat"
	ParamRadius = "km"
)

const msgRequired = "Required"

// ParseNearbyQuery validates the lon, lat and km parameters of a proximity query.
// lon and lat are required; km defaults to DefaultRadiusKM. Every parameter must be
// a finite number. Coordinate ranges are not checked. All invalid fields are
// reported together in an *apperror.Error with code VALIDATION_ERROR.
func ParseNearbyQuery(raw url.Values) (models.NearbyQuery, error) {
	fields := make(map[string][]string)

	lon, lonErr := requiredNumber(raw, ParamLon)
	if lonErr != "" {
		fields[ParamLon] = append(fields[ParamLon], lonErr)
	}

	lat, latErr := requiredNumber(raw, ParamLat)
	if latErr != "" {
		fields[ParamLat] = append(fields[ParamLat], latErr)
	}

	radius := float64(DefaultRadiusKM)
	if value := strings.TrimSpace(raw.Get(ParamRadius)); value != "" {
		var radiusErr string
		radius, radiusErr = parseNumber(value)
		if radiusErr != "" {
			fields[ParamRadius] = append(fields[ParamRadius], radiusErr)
		}
	}

	if len(fields) > 0 {
		return models.NearbyQuery{}, apperror.Validation(fields)
	}

	return models.NearbyQuery{Lon: lon, Lat: lat, RadiusKM: radius}, nil
}

func requiredNumber(raw url.Values, key string) (float64, string) {
	value := strings.TrimSpace(raw.Get(key))
	if value == "" {
		return 0, msgRequired
	}

	return parseNumber(value)
}

func parseNumber(value string) (float64, string) {
	number, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, fmt.Sprintf("Expected a finite number, received %q", value)
	}

	return number, ""
}
