// Package seed creates the restaurants schema and loads restaurant data into it.
package seed

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"

	"github.com/jflam/ai-starter-app-postgis/internal/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the embedded schema migrations in file name order.
// Every migration is idempotent, so Migrate can run on every start.
func Migrate(ctx context.Context, db repository.Database, log *slog.Logger) error {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := migrations.ReadFile(path.Join("migrations", name))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		if _, err = db.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}

		log.InfoContext(ctx, "Migration applied", "name", name)
	}

	return nil
}
