package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"weather-now/internal/providers/openstreetmap"
	"weather-now/internal/types"
)

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	// ErrNoLocality means the coordinate is not inside any named settlement or region
	ErrNoLocality = errors.New("no locality at coordinates")
)

// locationService implements the Service interface
type locationService struct {
	locationProvider ReverseGeocodeProvider
	logger           *slog.Logger
}

// NewLocationService creates a new location service backed by OpenStreetMap
func NewLocationService(logger *slog.Logger, timeout time.Duration) Service {
	return NewLocationServiceWithProviders(openstreetmap.NewClient(logger, timeout), logger)
}

// NewLocationServiceWithProviders creates a new location service with custom providers
// This is useful for testing with mock providers
func NewLocationServiceWithProviders(locationProvider ReverseGeocodeProvider, logger *slog.Logger) Service {
	return &locationService{
		locationProvider: locationProvider,
		logger:           logger.With("component", "location-service"),
	}
}

func (s *locationService) Describe(ctx context.Context, coords types.Coords) (types.Place, error) {
	if coords.Latitude < -90 || coords.Latitude > 90 {
		return types.Place{}, ErrInvalidLatitude
	}
	if coords.Longitude < -180 || coords.Longitude > 180 {
		return types.Place{}, ErrInvalidLongitude
	}

	resp, err := s.locationProvider.Lookup(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return types.Place{}, fmt.Errorf("failed to get location: %w", err)
	}

	place, err := translatePlace(resp)
	if err != nil {
		return types.Place{}, err
	}

	s.logger.Debug("described location",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"name", place.Name,
		"country", place.Country,
	)

	return place, nil
}

// translatePlace converts an OpenStreetMap reverse lookup response to a display Place
func translatePlace(resp *openstreetmap.LookupAPIResponse) (types.Place, error) {
	if resp == nil {
		return types.Place{}, fmt.Errorf("lookup response is nil")
	}

	// Prefer the settlement, then the feature name, then the wider region
	name := resp.Address.Locality()
	if name == "" {
		name = resp.Name
	}
	if name == "" {
		name = resp.Address.County
	}
	if name == "" {
		name = resp.Address.State
	}
	if name == "" {
		return types.Place{}, ErrNoLocality
	}

	return types.Place{
		Name:        name,
		Region:      resp.Address.State,
		Country:     resp.Address.Country,
		CountryCode: resp.Address.CountryCode,
	}, nil
}
