// Package geo holds the GeoJSON point representation used on the wire and
// the unit conversions applied to distances computed by PostGIS.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// TypePoint is the GeoJSON geometry type of a Point.
const TypePoint = "Point"

// ErrInvalidGeometry is returned when a GeoJSON document is not a valid Point.
var ErrInvalidGeometry = errors.New("invalid GeoJSON point")

// Point is a geographic position in WGS84 degrees.
// On the wire it is a GeoJSON Point: {"type":"Point","coordinates":[lon,lat]}.
type Point struct {
	Longitude float64
	Latitude  float64
}

type geoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewPoint builds a Point from longitude and latitude, in that order.
func NewPoint(lon, lat float64) Point {
	return Point{Longitude: lon, Latitude: lat}
}

// Coordinates returns the GeoJSON coordinate pair [lon, lat].
func (p Point) Coordinates() [2]float64 {
	return [2]float64{p.Longitude, p.Latitude}
}

// MarshalJSON encodes the point as a GeoJSON Point.
func (p Point) MarshalJSON() ([]byte, error) {
	if !isFinite(p.Longitude) || !isFinite(p.Latitude) {
		return nil, fmt.Errorf("%w: coordinates must be finite", ErrInvalidGeometry)
	}

	return json.Marshal(geoJSONPoint{
		Type:        TypePoint,
		Coordinates: []float64{p.Longitude, p.Latitude},
	})
}

// UnmarshalJSON decodes a GeoJSON Point. Extra positions (altitude) are rejected
// so that the record always carries exactly [lon, lat].
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw geoJSONPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGeometry, err)
	}

	if raw.Type != TypePoint {
		return fmt.Errorf("%w: unexpected type %q", ErrInvalidGeometry, raw.Type)
	}

	const positionLength = 2
	if len(raw.Coordinates) != positionLength {
		return fmt.Errorf("%w: expected 2 coordinates, got %d", ErrInvalidGeometry, len(raw.Coordinates))
	}

	lon, lat := raw.Coordinates[0], raw.Coordinates[1]
	if !isFinite(lon) || !isFinite(lat) {
		return fmt.Errorf("%w: coordinates must be finite", ErrInvalidGeometry)
	}

	p.Longitude, p.Latitude = lon, lat

	return nil
}

// ParsePoint parses the output of ST_AsGeoJSON for a point geometry.
func ParsePoint(geojson string) (Point, error) {
	var p Point
	if err := p.UnmarshalJSON([]byte(geojson)); err != nil {
		return Point{}, err
	}

	return p, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
