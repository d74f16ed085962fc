package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jflam/ai-starter-app-postgis/internal/geo"
	"github.com/jflam/ai-starter-app-postgis/internal/models"
)

const restaurantColumns = `
			id,
			name,
			city,
			address,
			cuisine_type,
			specialty,
			yelp_rating::float8 AS yelp_rating,
			price_range,
			image_url,
			ST_AsGeoJSON(location) AS location_geojson`

const listRestaurantsQuery = `
		SELECT` + restaurantColumns + `
		FROM restaurants
		WHERE location IS NOT NULL
		ORDER BY rank ASC, id ASC;
	`

const listNearbyQuery = `
		SELECT` + restaurantColumns + `,
			ST_Distance(
				location::geography,
				ST_SetSRID(ST_MakePoint($1::float8, $2::float8), 4326)::geography
			) AS meters
		FROM restaurants
		WHERE
			location IS NOT NULL
			AND ST_DWithin(
				location::geography,
				ST_SetSRID(ST_MakePoint($1::float8, $2::float8), 4326)::geography,
				$3::float8
			)
		ORDER BY meters ASC, id ASC;
	`

const getRestaurantQuery = `
		SELECT` + restaurantColumns + `
		FROM restaurants
		WHERE id = $1::text::bigint AND location IS NOT NULL;
	`

// restaurantRow mirrors the columns selected by the restaurant queries.
type restaurantRow struct {
	ID              int64
	Name            string
	City            string
	Address         string
	CuisineType     string
	Specialty       string
	YelpRating      float64
	PriceRange      string
	ImageURL        *string
	LocationGeoJSON string
}

func (r *restaurantRow) targets() []any {
	return []any{
		&r.ID, &r.Name, &r.City, &r.Address, &r.CuisineType, &r.Specialty,
		&r.YelpRating, &r.PriceRange, &r.ImageURL, &r.LocationGeoJSON,
	}
}

// toModel converts the raw row into the API record. The geometry is parsed here so a
// malformed location fails at this single translation point.
func (r *restaurantRow) toModel() (models.Restaurant, error) {
	location, err := geo.ParsePoint(r.LocationGeoJSON)
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("restaurant %d: %w", r.ID, err)
	}

	return models.Restaurant{
		ID:          r.ID,
		Name:        r.Name,
		City:        r.City,
		Address:     r.Address,
		CuisineType: r.CuisineType,
		Specialty:   r.Specialty,
		YelpRating:  r.YelpRating,
		PriceRange:  r.PriceRange,
		ImageURL:    r.ImageURL,
		Location:    location,
	}, nil
}

// ListRestaurants returns every geolocated restaurant ordered by rank, lowest first.
// Restaurants sharing a rank are ordered by id. Rows still waiting for the
// geocoding backfill have no location and are not listed.
func (r *Repository) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := r.db.Query(ctx, listRestaurantsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := make([]models.Restaurant, 0)
	for rows.Next() {
		restaurant, errScan := scanRestaurant(rows)
		if errScan != nil {
			return nil, errScan
		}
		restaurants = append(restaurants, restaurant)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Restaurants fetched", "count", len(restaurants))

	return restaurants, nil
}

// ListNearby returns the restaurants within query.RadiusKM kilometers of the query point,
// nearest first. Containment and distance are geodesic, computed by PostGIS on geography.
// Equal distances are ordered by id.
func (r *Repository) ListNearby(ctx context.Context, query models.NearbyQuery) ([]models.NearbyRestaurant, error) {
	rows, err := r.db.Query(ctx, listNearbyQuery, query.Lon, query.Lat, geo.KilometersToMeters(query.RadiusKM))
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := make([]models.NearbyRestaurant, 0)
	for rows.Next() {
		var (
			row    restaurantRow
			meters float64
		)
		if errScan := rows.Scan(append(row.targets(), &meters)...); errScan != nil {
			return nil, fmt.Errorf("failed to scan nearby restaurant: %w", errScan)
		}

		restaurant, errMap := row.toModel()
		if errMap != nil {
			return nil, fmt.Errorf("failed to map nearby restaurant: %w", errMap)
		}

		restaurants = append(restaurants, models.NearbyRestaurant{Restaurant: restaurant, Meters: meters})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Nearby restaurants fetched",
		"lon", query.Lon, "lat", query.Lat, "km", query.RadiusKM, "count", len(restaurants))

	return restaurants, nil
}

// GetRestaurant returns the restaurant with the given id. The id is passed to the
// database as is; ErrNotFound is returned when no row matches, including a row
// that has not been geocoded yet.
func (r *Repository) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	rows, err := r.db.Query(ctx, getRestaurantQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurant: %w", err)
	}
	defer rows.Close()

	var found *models.Restaurant
	for rows.Next() {
		restaurant, errScan := scanRestaurant(rows)
		if errScan != nil {
			return nil, errScan
		}
		if found == nil {
			found = &restaurant
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	if found == nil {
		return nil, fmt.Errorf("id %s: %w", id, ErrNotFound)
	}

	return found, nil
}

func scanRestaurant(rows pgx.Rows) (models.Restaurant, error) {
	var row restaurantRow
	if err := rows.Scan(row.targets()...); err != nil {
		return models.Restaurant{}, fmt.Errorf("failed to scan restaurant: %w", err)
	}

	restaurant, err := row.toModel()
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("failed to map restaurant: %w", err)
	}

	return restaurant, nil
}
