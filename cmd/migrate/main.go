package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"devsocial_backend/internal/platform/db"
	"devsocial_backend/internal/platform/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	logger.New(logger.LoadConfig(), os.Stdout)

	cfg := db.LoadConfigFromEnv()
	// OpenDB でマイグレーションを走らせず、ここで明示的に実行する
	cfg.RunMigrations = false

	gdb, err := db.OpenDB(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrate ok")
}
