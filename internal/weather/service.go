package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"weather-now/internal/config"
	"weather-now/internal/providers/openmeteo"
	"weather-now/internal/timezone"
	"weather-now/internal/types"
)

const (
	// only the best geocoding match is used
	geocodingResultCount = 1

	forecastTimeLayout = "2006-01-02T15:04"
)

var tracer = otel.Tracer("weather-now/internal/weather")

type GeocodingProvider interface {
	// Search looks a place name up and returns at most count matches
	Search(ctx context.Context, name string, count int) (*openmeteo.GeocodingAPIResponse, error)
}

type ForecastProvider interface {
	// GetCurrentWeather fetches current conditions in the given unit system
	GetCurrentWeather(ctx context.Context, latitude, longitude float64, unit types.Unit) (*openmeteo.ForecastAPIResponse, error)
}

// Service resolves places and fetches current weather. Every error it returns
// is a *LookupError.
type Service interface {
	// ResolvePlace geocodes a city name to its best match
	ResolvePlace(ctx context.Context, city string) (types.Place, types.Coords, error)
	// FetchCurrentWeather fetches a snapshot for coordinates without any place metadata
	FetchCurrentWeather(ctx context.Context, coords types.Coords, unit types.Unit) (*types.Snapshot, error)
	// GetWeatherByCity geocodes then fetches, labelling the snapshot with the matched place
	GetWeatherByCity(ctx context.Context, city string, unit types.Unit) (*types.Snapshot, error)
	// GetWeatherByCoords fetches for coordinates, labelling the snapshot with place when given
	GetWeatherByCoords(ctx context.Context, coords types.Coords, unit types.Unit, place types.Place) (*types.Snapshot, error)
}

type weatherService struct {
	geocodingProvider GeocodingProvider
	forecastProvider  ForecastProvider
	timezoneService   timezone.Service
	logger            *slog.Logger
}

func NewWeatherService(cfg *config.Config, logger *slog.Logger) (Service, error) {
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone service: %w", err)
	}

	opts := openmeteo.Options{
		Timeout:         cfg.Providers.HTTPTimeout,
		BreakerFailures: cfg.Providers.BreakerFailures,
	}
	geocodingOpts := opts
	geocodingOpts.BaseURL = cfg.Providers.GeocodingURL
	forecastOpts := opts
	forecastOpts.BaseURL = cfg.Providers.ForecastURL

	return NewWeatherServiceWithProviders(
		openmeteo.NewGeocodingClient(logger, geocodingOpts),
		openmeteo.NewForecastClient(logger, forecastOpts),
		tzSvc,
		logger,
	), nil
}

// NewWeatherServiceWithProviders creates a service with custom providers.
// timezoneService may be nil, snapshots then carry no timezone.
func NewWeatherServiceWithProviders(
	geocodingProvider GeocodingProvider,
	forecastProvider ForecastProvider,
	timezoneService timezone.Service,
	logger *slog.Logger,
) Service {
	return &weatherService{
		geocodingProvider: geocodingProvider,
		forecastProvider:  forecastProvider,
		timezoneService:   timezoneService,
		logger:            logger.With("component", "weather-service"),
	}
}

func (s *weatherService) ResolvePlace(ctx context.Context, city string) (types.Place, types.Coords, error) {
	name := strings.TrimSpace(city)

	ctx, span := tracer.Start(ctx, "weather.ResolvePlace", trace.WithAttributes(
		attribute.String("city", name),
	))
	defer span.End()

	if name == "" {
		err := &LookupError{Stage: StageGeocoding, Kind: ErrInvalidCity}
		recordError(span, err)
		return types.Place{}, types.Coords{}, err
	}

	resp, err := s.geocodingProvider.Search(ctx, name, geocodingResultCount)
	if err != nil {
		lookupErr := classify(StageGeocoding, err)
		recordError(span, lookupErr)
		return types.Place{}, types.Coords{}, lookupErr
	}

	if resp == nil || len(resp.Results) == 0 {
		lookupErr := &LookupError{
			Stage: StageGeocoding,
			Kind:  ErrNotFound,
			Err:   fmt.Errorf("no match for %q", name),
		}
		recordError(span, lookupErr)
		return types.Place{}, types.Coords{}, lookupErr
	}

	result := resp.Results[0]
	place := types.Place{
		Name:        result.Name,
		Region:      result.Admin1,
		Country:     result.Country,
		CountryCode: result.CountryCode,
	}
	coords := types.NewCoords(result.Latitude, result.Longitude)

	s.logger.Debug("resolved place",
		"city", name,
		"name", place.Name,
		"country", place.Country,
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)

	return place, coords, nil
}

func (s *weatherService) FetchCurrentWeather(ctx context.Context, coords types.Coords, unit types.Unit) (*types.Snapshot, error) {
	// the zero Unit means metric
	if !unit.Valid() {
		unit = types.UnitMetric
	}

	ctx, span := tracer.Start(ctx, "weather.FetchCurrentWeather", trace.WithAttributes(
		attribute.Float64("latitude", coords.Latitude),
		attribute.Float64("longitude", coords.Longitude),
		attribute.String("unit", string(unit)),
	))
	defer span.End()

	if !coords.Valid() {
		err := &LookupError{
			Stage: StageForecast,
			Kind:  ErrInvalidCoordinates,
			Err:   fmt.Errorf("invalid coordinates %s", coords),
		}
		recordError(span, err)
		return nil, err
	}

	resp, err := s.forecastProvider.GetCurrentWeather(ctx, coords.Latitude, coords.Longitude, unit)
	if err != nil {
		lookupErr := classify(StageForecast, err)
		recordError(span, lookupErr)
		return nil, lookupErr
	}

	snapshot, err := newSnapshot(coords, unit, resp)
	if err != nil {
		lookupErr := &LookupError{Stage: StageForecast, Kind: ErrDataUnavailable, Err: err}
		recordError(span, lookupErr)
		return nil, lookupErr
	}

	snapshot.Timezone = s.lookupTimezone(coords)

	return snapshot, nil
}

func (s *weatherService) GetWeatherByCity(ctx context.Context, city string, unit types.Unit) (*types.Snapshot, error) {
	lookupID := uuid.NewString()
	logger := s.logger.With("lookup_id", lookupID)

	ctx, span := tracer.Start(ctx, "weather.GetWeatherByCity", trace.WithAttributes(
		attribute.String("lookup.id", lookupID),
		attribute.String("unit", string(unit)),
	))
	defer span.End()

	logger.Debug("looking up weather by city", "city", city, "unit", unit)

	place, coords, err := s.ResolvePlace(ctx, city)
	if err != nil {
		logger.Error("failed to resolve place", "city", city, "error", err)
		recordError(span, err)
		return nil, err
	}

	snapshot, err := s.FetchCurrentWeather(ctx, coords, unit)
	if err != nil {
		logger.Error("failed to fetch current weather", "city", city, "error", err)
		recordError(span, err)
		return nil, err
	}

	logger.Debug("weather lookup complete",
		"name", place.Name,
		"temperature", snapshot.Temperature,
		"weather_code", snapshot.WeatherCode,
	)

	return snapshot.WithPlace(place), nil
}

func (s *weatherService) GetWeatherByCoords(ctx context.Context, coords types.Coords, unit types.Unit, place types.Place) (*types.Snapshot, error) {
	lookupID := uuid.NewString()
	logger := s.logger.With("lookup_id", lookupID)

	ctx, span := tracer.Start(ctx, "weather.GetWeatherByCoords", trace.WithAttributes(
		attribute.String("lookup.id", lookupID),
		attribute.String("unit", string(unit)),
	))
	defer span.End()

	logger.Debug("looking up weather by coordinates",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"unit", unit,
	)

	snapshot, err := s.FetchCurrentWeather(ctx, coords, unit)
	if err != nil {
		logger.Error("failed to fetch current weather",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		recordError(span, err)
		return nil, err
	}

	if !place.IsZero() {
		snapshot = snapshot.WithPlace(place)
	}

	logger.Debug("weather lookup complete",
		"name", snapshot.Name,
		"temperature", snapshot.Temperature,
		"weather_code", snapshot.WeatherCode,
	)

	return snapshot, nil
}

// lookupTimezone returns the IANA zone for coords, or "" when it cannot be determined
func (s *weatherService) lookupTimezone(coords types.Coords) string {
	if s.timezoneService == nil {
		return ""
	}
	tz, err := s.timezoneService.GetTimezone(coords.Latitude, coords.Longitude)
	if err != nil {
		s.logger.Warn("failed to determine timezone",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		return ""
	}
	return tz
}

// newSnapshot builds a snapshot from a forecast response. The requested
// coordinates are kept rather than the grid point the API snapped to, so a
// later re-fetch asks for exactly the same location.
func newSnapshot(coords types.Coords, unit types.Unit, resp *openmeteo.ForecastAPIResponse) (*types.Snapshot, error) {
	if resp == nil || resp.CurrentWeather == nil {
		return nil, fmt.Errorf("response has no current_weather")
	}
	current := resp.CurrentWeather

	observed, err := time.ParseInLocation(forecastTimeLayout, current.Time, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("failed to parse time %q: %w", current.Time, err)
	}

	snapshot := &types.Snapshot{
		Temperature:   current.Temperature,
		WindSpeed:     current.Windspeed,
		WindDirection: int(math.Round(current.Winddirection)),
		WeatherCode:   current.Weathercode,
		IsDay:         current.IsDay == 1,
		Time:          observed,
		Latitude:      coords.Latitude,
		Longitude:     coords.Longitude,
		Unit:          unit,
	}
	if resp.Current != nil && resp.Current.Precipitation != nil {
		precipitation := *resp.Current.Precipitation
		snapshot.Precipitation = &precipitation
	}

	return snapshot, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
