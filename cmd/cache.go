package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sablewood/rymx/internal/models"
	"github.com/sablewood/rymx/internal/repositories"
	"github.com/sablewood/rymx/internal/shared"
)

// openCacheDB opens the configured resolution database and runs migrations.
func (r *Runner) openCacheDB() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// CacheStats prints per-kind counts of cached resolutions.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	db, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := repositories.NewResolutionRepository(db).Stats()
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(stats, true)
	}

	total := 0
	for _, count := range stats {
		total += count
	}

	r.writePlain("Resolution cache (%s):\n\n", r.config.Database.Path)
	r.writePlain("  Albums:  %d\n", stats[models.KindAlbum])
	r.writePlain("  Singles: %d\n", stats[models.KindTrack])
	r.writePlain("  Total:   %d\n", total)

	return nil
}

// CacheClear removes every cached resolution.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	removed, err := repositories.NewResolutionRepository(db).Clear()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.logger.Infof("cleared %d cached resolutions", removed)
	r.writePlain("Removed %d cached resolutions.\n", removed)

	return nil
}
