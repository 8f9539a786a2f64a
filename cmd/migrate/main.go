package main

// Run database migrations for the SQL history backends:
//   HISTORY_BACKEND=postgres go run ./cmd/migrate
//   HISTORY_BACKEND=sqlite go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"resume-review/internal/shared/config"
	"resume-review/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var (
		dialect db.Dialect
		dsn     string
		err     error
	)
	switch cfg.HistoryBackend {
	case "postgres":
		dialect, dsn = db.Postgres, cfg.DatabaseURL
	case "sqlite":
		dialect = db.SQLite
		dsn, err = db.SQLiteDSN(cfg.LocalStoreDir)
		if err != nil {
			log.Printf("failed to prepare sqlite path: %v", err)
			os.Exit(1)
		}
	default:
		log.Printf("HISTORY_BACKEND=%s has no schema; nothing to migrate", cfg.HistoryBackend)
		return
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, dialect, dsn, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, dialect, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	log.Printf("migrations applied (%s)", cfg.HistoryBackend)
}
