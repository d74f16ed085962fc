package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/jflam/ai-starter-app-postgis/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		env     string
		enabled slog.Level
		muted   slog.Level
	}{
		{env: logger.EnvLocal, enabled: slog.LevelDebug, muted: slog.LevelDebug - 1},
		{env: logger.EnvDev, enabled: slog.LevelInfo, muted: slog.LevelDebug},
		{env: logger.EnvProd, enabled: slog.LevelWarn, muted: slog.LevelInfo},
		{env: "unknown", enabled: slog.LevelError, muted: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			log := logger.New(tt.env)

			assert.True(t, log.Enabled(ctx, tt.enabled))
			assert.False(t, log.Enabled(ctx, tt.muted))
		})
	}
}
