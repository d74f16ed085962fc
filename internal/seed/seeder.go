package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jflam/ai-starter-app-postgis/internal/models"
	"github.com/jflam/ai-starter-app-postgis/internal/repository"
)

// Result summarizes a seeding run.
type Result struct {
	Upserted int // Upserted is the number of rows inserted or updated.
	Pending  int // Pending is the number of rows left for the geocoding backfill.
}

// Seeder writes restaurant records to the store.
type Seeder struct {
	log  *slog.Logger
	repo repository.SeedInterface
}

func NewSeeder(log *slog.Logger, repo repository.SeedInterface) *Seeder {
	return &Seeder{log: log, repo: repo}
}

// Seed upserts every input and stops at the first failure.
func (s *Seeder) Seed(ctx context.Context, inputs []models.RestaurantInput) (Result, error) {
	var result Result

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if _, err := s.repo.UpsertRestaurant(ctx, input); err != nil {
			return result, fmt.Errorf("failed to seed restaurants: %w", err)
		}

		result.Upserted++
		if input.Location == nil {
			result.Pending++
		}
	}

	s.log.InfoContext(ctx, "Restaurants seeded", "upserted", result.Upserted, "pending_geocoding", result.Pending)

	return result, nil
}
