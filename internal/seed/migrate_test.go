package seed_test

import (
	"log/slog"
	"testing"

	"github.com/jflam/ai-starter-app-postgis/internal/seed"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("success - applies migrations in order", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS postgis`).
			WillReturnResult(pgxmock.NewResult("CREATE EXTENSION", 0))
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS restaurants[\s\S]+USING GIST`).
			WillReturnResult(pgxmock.NewResult("CREATE INDEX", 0))

		err = seed.Migrate(ctx, mock, logger)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - stops at the failing migration", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS postgis`).WillReturnError(assert.AnError)

		err = seed.Migrate(ctx, mock, logger)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to apply migration 001_postgis.sql")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
