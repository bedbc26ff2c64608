package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"customer-route-service/internal/adapters/repositories"
	"customer-route-service/internal/config"
	"customer-route-service/internal/platform/db"
)

// dbtool initializes the Postgres schema and seeds customers.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	seedPath := flag.String("seed", cfg.SeedPath, "path to customers JSON seed file")
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	if err := run(cfg.DatabaseURL, logger, *seedPath, *schemaOnly); err != nil {
		logger.Error("dbtool failed", "err", err)
		os.Exit(1)
	}
}

func run(databaseURL string, logger *slog.Logger, seedPath string, schemaOnly bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	return initAndSeed(ctx, logger, database, seedPath, schemaOnly)
}

func initAndSeed(ctx context.Context, logger *slog.Logger, database *sql.DB, seedPath string, schemaOnly bool) error {
	logger.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, database); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	logger.Info("schema ready")

	if schemaOnly {
		return nil
	}

	logger.Info("seeding database", "path", seedPath)
	n, err := repositories.SeedFromJSON(ctx, database, seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	logger.Info("seeding complete", "customers", n)

	return nil
}
