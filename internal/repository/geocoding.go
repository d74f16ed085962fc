package repository

import (
	"context"
	"fmt"

	"github.com/jflam/ai-starter-app-postgis/internal/models"
)

// MaxGeocodingAttempts is the number of failed attempts after which a restaurant
// is no longer offered to the geocoding backfill.
const MaxGeocodingAttempts = 5

// FetchPendingGeocoding retrieves restaurants that have no location yet.
// It returns rows with fewer than MaxGeocodingAttempts failed attempts and a
// non-empty address, ordered by rank and limited to the specified count.
func (r *Repository) FetchPendingGeocoding(ctx context.Context, limit int) ([]models.PendingRestaurant, error) {
	var pending []models.PendingRestaurant
	query := `
		SELECT id, address, city
		FROM restaurants
		WHERE
			location IS NULL
			AND geocoding_attempts < $1
			AND address <> ''
		ORDER BY rank ASC, id ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, MaxGeocodingAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants without location: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var restaurant models.PendingRestaurant
		if errScan := rows.Scan(&restaurant.ID, &restaurant.Address, &restaurant.City); errScan != nil {
			return nil, fmt.Errorf("failed to scan restaurant without location: %w", errScan)
		}
		r.log.DebugContext(ctx, "A restaurant without location has been received.",
			"ID", restaurant.ID, "Address", restaurant.Address)
		pending = append(pending, restaurant)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return pending, nil
}

// UpdateLocation stores the geocoded point of a restaurant and clears its last error.
func (r *Repository) UpdateLocation(ctx context.Context, id int64, coords models.Coordinates) error {
	query := `
		UPDATE restaurants
		SET
			location = ST_SetSRID(ST_MakePoint($1::float8, $2::float8), 4326),
			geocoding_error = NULL
		WHERE
			id = $3;
	`

	_, err := r.db.Exec(ctx, query, coords.Longitude, coords.Latitude, id)
	if err != nil {
		return fmt.Errorf("failed to update restaurant location: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the geocoding attempt count of a restaurant
// and records the error message.
func (r *Repository) IncrementFailureCount(ctx context.Context, id int64, errMsg string) error {
	query := `
		UPDATE restaurants
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}
