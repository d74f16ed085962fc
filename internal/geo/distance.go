package geo

import "math"

const metersPerKilometer = 1000

// MetersToKilometers converts a distance in meters to kilometers rounded to
// two fractional digits. Negative inputs are clamped to zero.
func MetersToKilometers(meters float64) float64 {
	if meters <= 0 || math.IsNaN(meters) {
		return 0
	}

	const scale = 100
	return math.Round(meters/metersPerKilometer*scale) / scale
}

// KilometersToMeters converts a radius in kilometers to meters.
func KilometersToMeters(km float64) float64 {
	return km * metersPerKilometer
}
