package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"weather-now/internal/types"
)

// API Docs: https://open-meteo.com/en/docs
// Sample request: https://api.open-meteo.com/v1/forecast?latitude=48.85&longitude=2.35&current_weather=true&current=precipitation&temperature_unit=celsius&windspeed_unit=kmh&precipitation_unit=mm&timezone=GMT&timeformat=iso8601
const (
	baseForecastURL = "https://api.open-meteo.com/v1/forecast"
)

type ForecastClient struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

func NewForecastClient(logger *slog.Logger, opts Options) *ForecastClient {
	logger = logger.With("component", "openmeteo-forecast-client")
	return &ForecastClient{
		httpClient: opts.httpClient(),
		baseURL:    opts.baseURL(baseForecastURL),
		breaker:    newBreaker("openmeteo-forecast", opts.BreakerFailures, logger),
		logger:     logger,
	}
}

// GetCurrentWeather fetches current conditions only. Temperature, wind speed and
// precipitation tokens all come from the same unit.
func (c *ForecastClient) GetCurrentWeather(ctx context.Context, latitude, longitude float64, unit types.Unit) (*ForecastAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	tokens := unit.Tokens()

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%f", latitude))
	q.Set("longitude", fmt.Sprintf("%f", longitude))
	q.Set("current_weather", "true")
	q.Set("current", "precipitation")
	q.Set("temperature_unit", tokens.Temperature)
	q.Set("windspeed_unit", tokens.WindSpeed)
	q.Set("precipitation_unit", tokens.Precipitation)
	q.Set("timezone", "GMT")
	q.Set("timeformat", "iso8601")
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching current weather",
		"latitude", latitude,
		"longitude", longitude,
		"unit", unit,
		"url", u.String(),
	)

	var apiResp ForecastAPIResponse
	if err := getJSON(ctx, c.httpClient, c.breaker, u.String(), &apiResp); err != nil {
		c.logger.Error("failed to fetch current weather",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, err
	}

	c.logger.Debug("successfully fetched current weather",
		"latitude", apiResp.Latitude,
		"longitude", apiResp.Longitude,
		"has_current_weather", apiResp.CurrentWeather != nil,
	)

	return &apiResp, nil
}
