package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"social-service/internal/config"
	"social-service/internal/database"
	"social-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.Log.Level, cfg.Log.Format))

	slog.Info("Starting database migration...", "driver", cfg.Database.Driver)

	// Connect to database
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.Ping(ctx, db); err != nil {
		slog.Error("Failed to ping database", "error", err)
		os.Exit(1)
	}

	// Auto migrate the schema
	if err := database.Migrate(db); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Database migration completed successfully!")
}
