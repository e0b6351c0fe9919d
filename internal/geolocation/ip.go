package geolocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"

	"weather-now/internal/types"
)

// API Docs: https://ip-api.com/docs/api:json
// Sample request: http://ip-api.com/json/?fields=status,message,lat,lon,city,country
const (
	DefaultIPLookupURL = "http://ip-api.com"

	ipFields = "status,message,lat,lon,city,country"
)

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

// IPLocator approximates the position from the public address of the host
type IPLocator struct {
	client *resty.Client
	logger *slog.Logger
}

func NewIPLocator(baseURL string, logger *slog.Logger) *IPLocator {
	if baseURL == "" {
		baseURL = DefaultIPLookupURL
	}
	logger = logger.With("component", "ip-locator")

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "weather-now/1.0")

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("ip lookup response",
			"status_code", resp.StatusCode(),
			"duration", resp.Time().String(),
		)
		return nil
	})

	return &IPLocator{client: client, logger: logger}
}

func (l *IPLocator) Locate(ctx context.Context) (types.Coords, error) {
	var body ipAPIResponse
	resp, err := l.client.R().
		SetContext(ctx).
		SetQueryParam("fields", ipFields).
		SetResult(&body).
		Get("/json/")
	if err != nil {
		l.logger.Error("failed to fetch ip location", "error", err)
		return types.Coords{}, fmt.Errorf("failed to fetch: %w", err)
	}
	if resp.IsError() {
		return types.Coords{}, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if body.Status != "success" {
		return types.Coords{}, &Error{Code: PositionUnavailable, Err: errors.New(body.Message)}
	}

	l.logger.Debug("located by ip", "city", body.City, "country", body.Country)

	return types.NewCoords(body.Lat, body.Lon), nil
}
