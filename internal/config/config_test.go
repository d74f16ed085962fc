package config_test

import (
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/jflam/ai-starter-app-postgis/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("PORT", "4000")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/restaurants")
	t.Setenv("DB_QUERY_TIMEOUT", "2s")
	t.Setenv("DB_MAX_CONNS", "20")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://localhost:3000")
	t.Setenv("GEOCODER_PROVIDER", "google")
	t.Setenv("GEOCODER_API_KEY", "testAPIKey")
	t.Setenv("GEOCODER_INTERVAL", "10m")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, 9090, cfg.MonitoringPort)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "postgres://user:pass@db:5432/restaurants", cfg.Database.URL)
	assert.True(t, cfg.Database.Required)
	assert.False(t, cfg.Database.DefaultURL)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "google", cfg.Geocoder.Provider)
	assert.Equal(t, "testAPIKey", cfg.Geocoder.APIKey)
	assert.Equal(t, 4, cfg.Geocoder.Workers)
	assert.Equal(t, 10*time.Minute, cfg.Geocoder.Interval)
}

func Test_MustLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")

	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "nominatim", cfg.Geocoder.Provider)
	assert.Equal(t, time.Minute, cfg.Geocoder.Interval)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", "APP_ENV=development\nPORT=5000\nDATABASE_URL=postgres://file/app\n")
	t.Setenv("CONFIG_FILE", file.Name())
	t.Setenv("PORT", "6000")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 6000, cfg.Port, "environment must override the file")
	assert.Equal(t, "postgres://file/app", cfg.Database.URL)
}

func TestMustLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	assert.PanicsWithValue(t, "DATABASE_URL environment variable is not set", func() {
		config.MustLoad()
	})
}

func TestMustLoad_MissingDatabaseURLNotRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_REQUIRED", "false")

	cfg := config.MustLoad()

	assert.Equal(t, config.DefaultDatabaseURL, cfg.Database.URL)
	assert.True(t, cfg.Database.DefaultURL)
}

func TestMustLoad_IntervalError(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	t.Setenv("GEOCODER_INTERVAL", "error_value")

	assert.PanicsWithValue(t, "failed to parse interval from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("MONITORING_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_WorkersError(t *testing.T) {
	t.Setenv("GEOCODER_WORKERS", "0")

	assert.PanicsWithValue(t, "failed to parse workers from configuration, must be a positive integer", func() {
		config.MustLoad()
	})
}

func TestMustLoad_QueryTimeoutError(t *testing.T) {
	t.Setenv("DB_QUERY_TIMEOUT", "soon")

	assert.PanicsWithValue(t, "failed to parse query timeout from configuration", func() {
		config.MustLoad()
	})
}
