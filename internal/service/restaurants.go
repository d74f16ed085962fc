package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jflam/ai-starter-app-postgis/internal/apperror"
	"github.com/jflam/ai-starter-app-postgis/internal/geo"
	"github.com/jflam/ai-starter-app-postgis/internal/metrics"
	"github.com/jflam/ai-starter-app-postgis/internal/models"
	"github.com/jflam/ai-starter-app-postgis/internal/repository"
)

// Operation labels used in store metrics.
const (
	opList    = "list"
	opNearby  = "nearby"
	opGetByID = "get_by_id"
)

// RestaurantService executes the read operations of the restaurant API and
// normalizes their results. Every call runs under its own query deadline.
type RestaurantService struct {
	log          *slog.Logger
	repo         repository.Interface
	metrics      *metrics.Metrics
	queryTimeout time.Duration
}

// NewRestaurantService creates a RestaurantService. A zero queryTimeout leaves
// the deadline to the caller's context.
func NewRestaurantService(
	log *slog.Logger,
	repo repository.Interface,
	metrics *metrics.Metrics,
	queryTimeout time.Duration,
) *RestaurantService {
	return &RestaurantService{
		log:          log,
		repo:         repo,
		metrics:      metrics,
		queryTimeout: queryTimeout,
	}
}

// List returns every restaurant ordered by rank.
func (s *RestaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	ctx, done := s.begin(ctx, opList)
	restaurants, err := s.repo.ListRestaurants(ctx)
	done(err)
	if err != nil {
		return nil, apperror.Store(err)
	}

	return restaurants, nil
}

// Nearby returns the restaurants within query.RadiusKM of the query point, nearest first,
// each annotated with its distance in kilometers rounded to two digits.
func (s *RestaurantService) Nearby(ctx context.Context, query models.NearbyQuery) ([]models.Restaurant, error) {
	ctx, done := s.begin(ctx, opNearby)
	rows, err := s.repo.ListNearby(ctx, query)
	done(err)
	if err != nil {
		return nil, apperror.Store(err)
	}

	restaurants := make([]models.Restaurant, 0, len(rows))
	for _, row := range rows {
		restaurant := row.Restaurant
		distance := geo.MetersToKilometers(row.Meters)
		restaurant.DistanceKM = &distance
		restaurants = append(restaurants, restaurant)
	}

	return restaurants, nil
}

// Get returns the restaurant with the given id, or a NOT_FOUND error.
func (s *RestaurantService) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	ctx, done := s.begin(ctx, opGetByID)
	restaurant, err := s.repo.GetRestaurant(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		done(nil)
		return nil, apperror.NotFound("Restaurant not found")
	}
	done(err)
	if err != nil {
		return nil, apperror.Store(err)
	}

	return restaurant, nil
}

// begin derives the query context and returns a function that releases it and
// records the duration and outcome of the operation.
func (s *RestaurantService) begin(ctx context.Context, operation string) (context.Context, func(error)) {
	cancel := context.CancelFunc(func() {})
	if s.queryTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
	}

	start := time.Now()

	return ctx, func(err error) {
		cancel()
		s.metrics.StoreQuerySeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.StoreErrors.WithLabelValues(operation).Inc()
			s.log.ErrorContext(ctx, "Restaurant query failed", "operation", operation, "error", err)
		}
	}
}
