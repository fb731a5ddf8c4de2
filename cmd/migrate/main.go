package main

import (
	"context"
	"os"

	"github.com/fhuszti/event-medias-go/internal/config"
	"github.com/fhuszti/event-medias-go/internal/db"
	"github.com/fhuszti/event-medias-go/internal/logger"
	"github.com/fhuszti/event-medias-go/internal/migration"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database, err := db.New(cfg.DBDriver, cfg.DBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Errorf(ctx, "DB close error: %v", err)
		}
	}()

	if err := migration.MigrateUp(database.DB, database.Driver); err != nil {
		logger.Errorf(ctx, "❌  Migration up failed: %v", err)
		// deferred Close is skipped by os.Exit
		_ = database.Close()
		os.Exit(1)
	}

	logger.Infof(ctx, "✅  Migrations applied successfully (%s)", database.Driver)
}
