// Package httpapi exposes the restaurant queries over HTTP.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jflam/ai-starter-app-postgis/internal/apperror"
	"github.com/jflam/ai-starter-app-postgis/internal/metrics"
	"github.com/jflam/ai-starter-app-postgis/internal/models"
)

// RestaurantQuerier is the read side of the restaurant service used by the handlers.
type RestaurantQuerier interface {
	List(ctx context.Context) ([]models.Restaurant, error)
	Nearby(ctx context.Context, query models.NearbyQuery) ([]models.Restaurant, error)
	Get(ctx context.Context, id string) (*models.Restaurant, error)
}

// Options configures the router.
type Options struct {
	Env            string           // Env selects how much of an internal error is exposed.
	AllowedOrigins []string         // AllowedOrigins is the CORS origin list; empty allows all.
	Metrics        *metrics.Metrics // Metrics records request counts and latencies.
	Now            func() time.Time // Now is the clock of the health endpoint.
}

// NewRouter builds the gin engine serving the API routes under both / and /api.
func NewRouter(log *slog.Logger, restaurants RestaurantQuerier, opts Options) *gin.Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	router := gin.New()
	router.Use(
		RequestID(),
		RequestLogger(log),
		Metrics(opts.Metrics),
		ErrorHandler(log, opts.Env),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			_ = c.Error(fmt.Errorf("panic recovered: %v", recovered))
			c.Abort()
		}),
		cors.New(corsConfig(opts.AllowedOrigins)),
	)

	handler := &Handler{log: log, restaurants: restaurants, now: opts.Now}
	for _, prefix := range []string{"", "/api"} {
		group := router.Group(prefix)
		group.GET("/health", handler.Health)
		group.GET("/restaurants", handler.ListRestaurants)
		group.GET("/restaurants/nearby", handler.NearbyRestaurants)
		group.GET("/restaurants/:id", handler.GetRestaurant)
	}

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Route not found"))
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", headerRequestID},
		ExposeHeaders: []string{"Content-Length", headerRequestID},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cfg
}
