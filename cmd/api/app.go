package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"weather-now/internal/config"
	"weather-now/internal/dashboard"
	"weather-now/internal/geolocation"
	"weather-now/internal/location"
	"weather-now/internal/recent"
	"weather-now/internal/storage"
	"weather-now/internal/types"
	"weather-now/internal/weather"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router    chi.Router
	api       huma.API
	logger    *slog.Logger
	dashboard *dashboard.Controller
	recent    dashboard.RecentSearches
	locator   geolocation.Locator
	store     *storage.SQLiteStore
}

// NewApp creates a new application wired to the real providers and database
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := storage.NewSQLite(cfg.Storage.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	weatherService, err := weather.NewWeatherService(cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create weather service: %w", err)
	}

	recentSearches := recent.Open(context.Background(), store, logger)
	locator := newLocator(cfg.Geolocation, logger)

	var describer location.Service
	if cfg.Geolocation.ReverseGeocode {
		describer = location.NewLocationService(logger, cfg.Providers.HTTPTimeout)
	}

	// both were validated with the config
	unit, _ := types.ParseUnit(cfg.App.DefaultUnit)
	theme, _ := types.ParseTheme(cfg.App.DefaultTheme)

	controller := dashboard.NewController(weatherService, recentSearches, dashboard.Options{
		Unit:               unit,
		Theme:              theme,
		Locator:            locator,
		GeolocationTimeout: cfg.Geolocation.Timeout,
		Describer:          describer,
	}, logger)

	app := newApp(controller, recentSearches, locator, cfg.Server.RequestTimeout, logger)
	app.store = store

	logger.Info("application initialized",
		"geolocation_mode", cfg.Geolocation.Mode,
		"reverse_geocode", cfg.Geolocation.ReverseGeocode,
		"storage_path", cfg.Storage.Path,
		"default_unit", unit,
	)

	return app, nil
}

// newApp builds the router and API around an existing controller
func newApp(
	controller *dashboard.Controller,
	recentSearches dashboard.RecentSearches,
	locator geolocation.Locator,
	requestTimeout time.Duration,
	logger *slog.Logger,
) *App {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		router.Use(middleware.Timeout(requestTimeout))
	}

	// Create Huma API on the chi router
	config := huma.DefaultConfig("Weather Now API", "1.0.0")
	config.Info.Description = "Current weather for any city or your own location"
	config.Servers = []*huma.Server{
		{URL: "http://localhost:8080", Description: "Development server"},
	}

	api := humachi.New(router, config)

	app := &App{
		router:    router,
		api:       api,
		logger:    logger,
		dashboard: controller,
		recent:    recentSearches,
		locator:   locator,
	}

	// Register routes
	app.registerRoutes()

	return app
}

// newLocator selects the configured geolocation source
func newLocator(cfg config.GeolocationConfig, logger *slog.Logger) geolocation.Locator {
	switch cfg.Mode {
	case "static":
		return geolocation.NewStatic(types.NewCoords(cfg.Latitude, cfg.Longitude))
	case "disabled":
		return geolocation.Disabled()
	default:
		return geolocation.NewIPLocator(cfg.IPURL, logger)
	}
}

// Run starts the HTTP server and shuts it down gracefully when ctx is done
func (app *App) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(app.router, "weather-now-api"),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	}
}

// Close releases the database
func (app *App) Close() error {
	if app.store == nil {
		return nil
	}
	return app.store.Close()
}
