package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jflam/ai-starter-app-postgis/internal/models"
)

// ErrNotFound is returned when no restaurant matches the requested identifier.
var ErrNotFound = errors.New("restaurant not found")

// Repository runs the restaurant queries against PostgreSQL.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface is the read side used by the restaurant query service.
type Interface interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	ListNearby(ctx context.Context, query models.NearbyQuery) ([]models.NearbyRestaurant, error)
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
}

// GeocodingInterface is used by the geocoding backfill.
type GeocodingInterface interface {
	FetchPendingGeocoding(ctx context.Context, limit int) ([]models.PendingRestaurant, error)
	UpdateLocation(ctx context.Context, id int64, coords models.Coordinates) error
	IncrementFailureCount(ctx context.Context, id int64, errMsg string) error
}

// SeedInterface is used by the seeding process.
type SeedInterface interface {
	UpsertRestaurant(ctx context.Context, input models.RestaurantInput) (int64, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
