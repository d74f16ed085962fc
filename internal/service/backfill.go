package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jflam/ai-starter-app-postgis/internal/geocoding"
	"github.com/jflam/ai-starter-app-postgis/internal/metrics"
	"github.com/jflam/ai-starter-app-postgis/internal/models"
	"github.com/jflam/ai-starter-app-postgis/internal/repository"
)

// backfillBatchSize is the maximum number of restaurants geocoded per poll.
const backfillBatchSize = 100

// Backfill geocodes restaurants that were seeded without a location, so that
// they become visible to the restaurant queries.
type Backfill struct {
	log           *slog.Logger                  // Logger for logging service activities
	repo          repository.GeocodingInterface // Access to restaurants without location
	provider      geocoding.Provider            // Geocoding provider for external geocoding services
	providerName  string                        // Name of the provider for metrics labeling
	metrics       *metrics.Metrics              // Metrics for tracking service performance
	numWorkers    int                           // Number of concurrent workers for processing
	pollInterval  time.Duration                 // Interval between polls
	addressSuffix string                        // Suffix appended to addresses (country, region)
}

// NewBackfill creates a new instance of Backfill.
func NewBackfill(
	log *slog.Logger,
	repo repository.GeocodingInterface,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
	addressSuffix string,
) *Backfill {
	return &Backfill{
		log:           log,
		repo:          repo,
		provider:      provider,
		providerName:  providerName,
		metrics:       metrics,
		numWorkers:    numWorkers,
		pollInterval:  pollInterval,
		addressSuffix: addressSuffix,
	}
}

// Run periodically polls for restaurants to geocode until ctx is canceled.
func (b *Backfill) Run(ctx context.Context) {
	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	b.log.InfoContext(ctx, "Geocoding backfill started...")

	for {
		select {
		case <-ctx.Done():
			b.log.InfoContext(ctx, "Geocoding backfill stopped.")
			return
		case <-ticker.C:
			b.log.InfoContext(ctx, "Polling for restaurants to geocode...")
			b.RunOnce(ctx)
		}
	}
}

// RunOnce geocodes one batch of restaurants with a worker pool and waits for it to finish.
// It returns the number of restaurants processed.
func (b *Backfill) RunOnce(ctx context.Context) int {
	pending, err := b.repo.FetchPendingGeocoding(ctx, backfillBatchSize)
	if err != nil {
		b.log.ErrorContext(ctx, "Failed to fetch restaurants without location", "error", err)
		return 0
	}
	if len(pending) == 0 {
		b.log.InfoContext(ctx, "No restaurants to geocode.")
		return 0
	}

	b.log.InfoContext(
		ctx,
		"Found restaurants to geocode. Starting worker pool.",
		"jobs", len(pending),
		"num_workers", b.numWorkers,
	)

	jobs := make(chan models.PendingRestaurant, len(pending))
	var wgr sync.WaitGroup

	for i := 1; i <= b.numWorkers; i++ {
		wgr.Add(1)
		go b.worker(ctx, i, &wgr, jobs)
	}

	for _, restaurant := range pending {
		jobs <- restaurant
	}
	close(jobs)

	wgr.Wait()
	b.log.InfoContext(ctx, "Geocoding batch finished")

	return len(pending)
}

// worker geocodes restaurants from the jobs channel and stores either the point
// or the failure.
func (b *Backfill) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.PendingRestaurant) {
	defer wg.Done()
	for restaurant := range jobs {
		b.metrics.ActiveWorkers.Inc()
		b.geocode(ctx, idx, restaurant)
		b.metrics.ActiveWorkers.Dec()
	}
}

func (b *Backfill) geocode(ctx context.Context, idx int, restaurant models.PendingRestaurant) {
	b.log.DebugContext(ctx, "Geocoding restaurant", "worker", idx, "restaurant", restaurant.ID)

	address := b.fullAddress(restaurant)
	startTime := time.Now()
	coords, err := b.provider.Geocode(ctx, address)
	b.metrics.GeocodeRequestSeconds.WithLabelValues(b.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		b.log.ErrorContext(ctx, "Failed to geocode", "worker", idx, "restaurant", restaurant.ID, "error", err)
		b.metrics.GeocodeProcessed.WithLabelValues("failure").Inc()
		b.metrics.GeocodeAPIErrors.Inc()

		if err = b.repo.IncrementFailureCount(ctx, restaurant.ID, err.Error()); err != nil {
			b.log.ErrorContext(ctx, "Could not update failure count for restaurant",
				"worker", idx, "restaurant", restaurant.ID, "error", err)
		}
		return
	}

	b.metrics.GeocodeProcessed.WithLabelValues("success").Inc()

	if err = b.repo.UpdateLocation(ctx, restaurant.ID, *coords); err != nil {
		b.log.ErrorContext(ctx, "Failed to update location for restaurant",
			"worker", idx, "restaurant", restaurant.ID, "error", err)
		return
	}

	b.log.DebugContext(ctx, "Worker successfully geocoded the restaurant", "worker", idx, "restaurant", restaurant.ID)
}

// fullAddress joins the street address, the city and the configured suffix.
func (b *Backfill) fullAddress(restaurant models.PendingRestaurant) string {
	parts := []string{strings.TrimSpace(restaurant.Address)}
	if city := strings.TrimSpace(restaurant.City); city != "" && !strings.Contains(parts[0], city) {
		parts = append(parts, city)
	}

	address := strings.Join(parts, ", ")
	if suffix := strings.TrimSpace(b.addressSuffix); suffix != "" {
		address += ", " + suffix
	}

	return address
}
