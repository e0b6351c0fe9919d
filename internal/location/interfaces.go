package location

import (
	"context"

	"weather-now/internal/providers/openstreetmap"
	"weather-now/internal/types"
)

// Service names the place at a coordinate for display
type Service interface {
	// Describe reverse geocodes coords into city-level display metadata
	Describe(ctx context.Context, coords types.Coords) (types.Place, error)
}

// ReverseGeocodeProvider defines the interface for location data providers
type ReverseGeocodeProvider interface {
	Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error)
}
