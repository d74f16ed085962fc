package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jflam/ai-starter-app-postgis/internal/config"
	"github.com/jflam/ai-starter-app-postgis/internal/geocoding"
	"github.com/jflam/ai-starter-app-postgis/internal/httpapi"
	"github.com/jflam/ai-starter-app-postgis/internal/logger"
	"github.com/jflam/ai-starter-app-postgis/internal/metrics"
	"github.com/jflam/ai-starter-app-postgis/internal/repository"
	"github.com/jflam/ai-starter-app-postgis/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
	connectTimeout  = 5 * time.Second
	geocodeRate     = 50
)

// main is the entry point of the restaurant API.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	appLog := logger.New(cfg.Env)

	if cfg.Env == logger.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	if cfg.Database.DefaultURL {
		appLog.WarnContext(ctx, "DATABASE_URL is not set, using the local default", "url", config.DefaultDatabaseURL)
	}

	dtb, err := repository.NewDatabase(ctx, repository.PoolConfig{
		URL:            cfg.Database.URL,
		MaxConns:       cfg.Database.MaxConns,
		ConnectTimeout: connectTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, appLog)
	restaurants := service.NewRestaurantService(appLog, repo, appMetrics, cfg.Database.QueryTimeout)

	if cfg.Geocoder.Interval > 0 {
		startBackfill(ctx, appLog, cfg, repo, appMetrics)
	}

	go startMonitoringServer(ctx, appLog, reg, dtb, cfg.MonitoringPort)

	router := httpapi.NewRouter(appLog, restaurants, httpapi.Options{
		Env:            cfg.Env,
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        appMetrics,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	go func() {
		appLog.InfoContext(ctx, "Starting API server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.ErrorContext(ctx, "API server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLog.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.ErrorContext(shutdownCtx, "API server shutdown failed", "error", err)
	}

	appLog.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// startBackfill starts the geocoding backfill in the background. A provider
// that cannot be built disables the backfill without stopping the API.
func startBackfill(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	repo *repository.Repository,
	appMetrics *metrics.Metrics,
) {
	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.Provider),
		APIKey:    cfg.Geocoder.APIKey,
		RateLimit: geocodeRate / cfg.Geocoder.Workers,
		Logger:    log,
	})
	if err != nil {
		log.ErrorContext(ctx, "Geocoding backfill disabled", "provider", cfg.Geocoder.Provider, "error", err)
		return
	}

	log.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Geocoder.Provider)

	backfill := service.NewBackfill(
		log,
		repo,
		provider,
		cfg.Geocoder.Provider,
		appMetrics,
		cfg.Geocoder.Workers,
		cfg.Geocoder.Interval,
		cfg.Geocoder.AddressSuffix,
	)

	go backfill.Run(ctx)
}

// startMonitoringServer serves /healthz, which pings the database, and /metrics.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}
