package models

import "github.com/jflam/ai-starter-app-postgis/internal/geo"

// Restaurant is the normalized restaurant record returned by the API.
// DistanceKM is only set by proximity queries.
type Restaurant struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	CuisineType string    `json:"cuisine_type"`
	Specialty   string    `json:"specialty"`
	YelpRating  float64   `json:"yelp_rating"`
	PriceRange  string    `json:"price_range"`
	ImageURL    *string   `json:"image_url"`
	Location    geo.Point `json:"location"`
	DistanceKM  *float64  `json:"distance_km,omitempty"`
}

// NearbyRestaurant pairs a restaurant with its raw distance from the query point.
type NearbyRestaurant struct {
	Restaurant
	Meters float64
}

// NearbyQuery is a validated proximity query.
type NearbyQuery struct {
	Lon      float64 // Longitude of the query point, degrees.
	Lat      float64 // Latitude of the query point, degrees.
	RadiusKM float64 // Search radius in kilometers.
}

// PendingRestaurant is a restaurant whose location has not been geocoded yet.
type PendingRestaurant struct {
	ID      int64  // ID is the restaurant identifier.
	Address string // Address is the street address to geocode.
	City    string // City narrows the geocoding request.
}

// RestaurantInput is a restaurant to insert or update by the seeding process.
// A nil Location leaves the row for the geocoding backfill.
type RestaurantInput struct {
	Name        string       `json:"name"`
	City        string       `json:"city"`
	Address     string       `json:"address"`
	CuisineType string       `json:"cuisine_type"`
	Specialty   string       `json:"specialty"`
	YelpRating  float64      `json:"yelp_rating"`
	PriceRange  string       `json:"price_range"`
	ImageURL    *string      `json:"image_url,omitempty"`
	Rank        int          `json:"rank"`
	Location    *Coordinates `json:"-"`
}
