package openmeteo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"
)

// API Docs: https://open-meteo.com/en/docs/geocoding-api
// Sample request: https://geocoding-api.open-meteo.com/v1/search?name=Paris&count=1&language=en&format=json
const (
	baseGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
)

type GeocodingClient struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

func NewGeocodingClient(logger *slog.Logger, opts Options) *GeocodingClient {
	logger = logger.With("component", "openmeteo-geocoding-client")
	return &GeocodingClient{
		httpClient: opts.httpClient(),
		baseURL:    opts.baseURL(baseGeocodingURL),
		breaker:    newBreaker("openmeteo-geocoding", opts.BreakerFailures, logger),
		logger:     logger,
	}
}

// Search looks a place name up and returns at most count matches, best first.
// A name with no match yields a response with no results, not an error.
func (c *GeocodingClient) Search(ctx context.Context, name string, count int) (*GeocodingAPIResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("name", name)
	q.Set("count", strconv.Itoa(count))
	q.Set("language", "en")
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	c.logger.Debug("searching place", "name", name, "url", u.String())

	var apiResp GeocodingAPIResponse
	if err := getJSON(ctx, c.httpClient, c.breaker, u.String(), &apiResp); err != nil {
		c.logger.Error("failed to search place", "name", name, "error", err)
		return nil, err
	}

	c.logger.Debug("successfully searched place", "name", name, "results", len(apiResp.Results))

	return &apiResp, nil
}
