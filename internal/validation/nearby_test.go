package validation_test

import (
	"net/url"
	"testing"

	"github.com/jflam/ai-starter-app-postgis/internal/apperror"
	"github.com/jflam/ai-starter-app-postgis/internal/models"
	"github.com/jflam/ai-starter-app-postgis/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNearbyQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  models.NearbyQuery
	}{
		{
			name:  "all parameters",
			query: "lon=-122.3321&lat=47.6062&km=10",
			want:  models.NearbyQuery{Lon: -122.3321, Lat: 47.6062, RadiusKM: 10},
		},
		{
			name:  "default radius",
			query: "lon=-122.3321&lat=47.6062",
			want:  models.NearbyQuery{Lon: -122.3321, Lat: 47.6062, RadiusKM: validation.DefaultRadiusKM},
		},
		{
			name:  "empty radius falls back to default",
			query: "lon=1&lat=2&km=",
			want:  models.NearbyQuery{Lon: 1, Lat: 2, RadiusKM: validation.DefaultRadiusKM},
		},
		{
			name:  "fractional radius with spaces",
			query: "lon=%201.5&lat=2.25%20&km=0.5",
			want:  models.NearbyQuery{Lon: 1.5, Lat: 2.25, RadiusKM: 0.5},
		},
		{
			name:  "out of range coordinates pass through",
			query: "lon=200&lat=95",
			want:  models.NearbyQuery{Lon: 200, Lat: 95, RadiusKM: validation.DefaultRadiusKM},
		},
		{
			name:  "exponent notation",
			query: "lon=1e1&lat=-2E-1&km=2.5e0",
			want:  models.NearbyQuery{Lon: 10, Lat: -0.2, RadiusKM: 2.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := validation.ParseNearbyQuery(raw)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNearbyQuery_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantFields []string
	}{
		{name: "non numeric longitude", query: "lon=invalid&lat=47.6062&km=10", wantFields: []string{"lon"}},
		{name: "missing latitude", query: "lon=-122.3321", wantFields: []string{"lat"}},
		{name: "missing everything", query: "", wantFields: []string{"lon", "lat"}},
		{name: "empty longitude", query: "lon=&lat=1", wantFields: []string{"lon"}},
		{name: "bad radius", query: "lon=1&lat=2&km=far", wantFields: []string{"km"}},
		{name: "nan", query: "lon=NaN&lat=2", wantFields: []string{"lon"}},
		{name: "infinite radius", query: "lon=1&lat=2&km=Inf", wantFields: []string{"km"}},
		{name: "every field", query: "lon=a&lat=b&km=c", wantFields: []string{"lon", "lat", "km"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := validation.ParseNearbyQuery(raw)

			require.Error(t, err)
			assert.Equal(t, models.NearbyQuery{}, got)

			appErr := apperror.From(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Len(t, appErr.Fields, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.NotEmpty(t, appErr.Fields[field], "expected details for %s", field)
			}
		})
	}
}
