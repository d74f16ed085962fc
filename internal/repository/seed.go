package repository

import (
	"context"
	"fmt"

	"github.com/jflam/ai-starter-app-postgis/internal/models"
)

const upsertRestaurantQuery = `
		INSERT INTO restaurants (
			name, city, address, cuisine_type, specialty,
			yelp_rating, price_range, image_url, rank, location
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			CASE
				WHEN $10::float8 IS NULL OR $11::float8 IS NULL THEN NULL
				ELSE ST_SetSRID(ST_MakePoint($10::float8, $11::float8), 4326)
			END
		)
		ON CONFLICT (name, address) DO UPDATE SET
			city = EXCLUDED.city,
			cuisine_type = EXCLUDED.cuisine_type,
			specialty = EXCLUDED.specialty,
			yelp_rating = EXCLUDED.yelp_rating,
			price_range = EXCLUDED.price_range,
			image_url = EXCLUDED.image_url,
			rank = EXCLUDED.rank,
			location = COALESCE(EXCLUDED.location, restaurants.location)
		RETURNING id;
	`

// UpsertRestaurant inserts a restaurant or updates the one with the same name and address.
// A nil input location keeps the stored one. It returns the restaurant id.
func (r *Repository) UpsertRestaurant(ctx context.Context, input models.RestaurantInput) (int64, error) {
	var lon, lat *float64
	if input.Location != nil {
		lon, lat = &input.Location.Longitude, &input.Location.Latitude
	}

	rows, err := r.db.Query(ctx, upsertRestaurantQuery,
		input.Name, input.City, input.Address, input.CuisineType, input.Specialty,
		input.YelpRating, input.PriceRange, input.ImageURL, input.Rank, lon, lat,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert restaurant %q: %w", input.Name, err)
	}
	defer rows.Close()

	var id int64
	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return 0, fmt.Errorf("failed to upsert restaurant %q: %w", input.Name, err)
		}
		return 0, fmt.Errorf("upsert of restaurant %q returned no id", input.Name)
	}

	if err = rows.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to scan restaurant id: %w", err)
	}

	r.log.DebugContext(ctx, "Restaurant upserted", "ID", id, "Name", input.Name)

	return id, nil
}
