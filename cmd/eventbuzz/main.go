package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/kirinyoku/eventbuzz/docs"
	"github.com/kirinyoku/eventbuzz/internal/app"
	"github.com/kirinyoku/eventbuzz/internal/config"
)

// @title EventBuzz API
// @version 1.0
// @description Seat reservation and ticket lifecycle for EventBuzz events.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application finished with error", "error", err)
		os.Exit(1)
	}
}
