package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"weather-now/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	// Create app
	app, err := NewApp(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The session opens on the user's location, like a fresh page load
	go app.dashboard.Start(ctx)

	// Start server
	logger.Info("starting server", "addr", cfg.GetServerAddr())
	runErr := app.Run(ctx, cfg.GetServerAddr())

	if err := app.Close(); err != nil {
		logger.Error("failed to close application", "error", err)
	}
	if runErr != nil {
		logger.Error("server failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
