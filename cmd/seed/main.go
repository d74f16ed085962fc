package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/jflam/ai-starter-app-postgis/internal/config"
	"github.com/jflam/ai-starter-app-postgis/internal/geocoding"
	"github.com/jflam/ai-starter-app-postgis/internal/logger"
	"github.com/jflam/ai-starter-app-postgis/internal/metrics"
	"github.com/jflam/ai-starter-app-postgis/internal/models"
	"github.com/jflam/ai-starter-app-postgis/internal/repository"
	"github.com/jflam/ai-starter-app-postgis/internal/seed"
	"github.com/jflam/ai-starter-app-postgis/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

const connectTimeout = 10 * time.Second

// main migrates the schema and loads restaurants into it.
//
// Usage:
//
//	seed [-file restaurants.xlsx] [-sheet Sheet1] [-migrate-only] [-geocode]
func main() {
	file := flag.String("file", "", "seed file (.json or .xlsx); the bundled Seattle set when empty")
	sheet := flag.String("sheet", "", "worksheet of an .xlsx seed file; the first one when empty")
	migrateOnly := flag.Bool("migrate-only", false, "apply migrations and exit")
	geocode := flag.Bool("geocode", false, "geocode restaurants without a location after seeding")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	appLog := logger.New(cfg.Env)

	dtb, err := repository.NewDatabase(ctx, repository.PoolConfig{
		URL:            cfg.Database.URL,
		MaxConns:       cfg.Database.MaxConns,
		ConnectTimeout: connectTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	if err = seed.Migrate(ctx, dtb, appLog); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	if *migrateOnly {
		return
	}

	inputs, err := loadInputs(*file, *sheet)
	if err != nil {
		log.Fatalf("Failed to load restaurants: %v", err)
	}

	repo := repository.NewRepository(dtb, appLog)
	result, err := seed.NewSeeder(appLog, repo).Seed(ctx, inputs)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seeded %d restaurants, %d waiting for geocoding", result.Upserted, result.Pending)

	if *geocode && result.Pending > 0 {
		runGeocoding(ctx, appLog, cfg, repo)
	}
}

func loadInputs(file, sheet string) ([]models.RestaurantInput, error) {
	if file == "" {
		return seed.Default()
	}

	return seed.LoadFile(file, sheet)
}

// runGeocoding runs a single backfill batch with the configured provider.
func runGeocoding(ctx context.Context, log *slog.Logger, cfg *config.Config, repo *repository.Repository) {
	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.Provider),
		APIKey:    cfg.Geocoder.APIKey,
		RateLimit: 1,
		Logger:    log,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to create geocoding provider", "error", err)
		return
	}

	backfill := service.NewBackfill(
		log,
		repo,
		provider,
		cfg.Geocoder.Provider,
		metrics.NewMetrics(prometheus.NewRegistry()),
		cfg.Geocoder.Workers,
		cfg.Geocoder.Interval,
		cfg.Geocoder.AddressSuffix,
	)

	processed := backfill.RunOnce(ctx)
	log.InfoContext(ctx, "Geocoding batch finished", "processed", processed)
}
