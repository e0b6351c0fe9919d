//go:build integration

package openmeteo

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"weather-now/internal/types"
)

func TestClients_Integration(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	ctx := context.Background()

	geocoder := NewGeocodingClient(logger, Options{})

	t.Logf("Making API call to OpenMeteo Geocoding API...")
	places, err := geocoder.Search(ctx, "Aspen", 1)
	if err != nil {
		t.Fatalf("Failed to search place: %v", err)
	}
	if len(places.Results) == 0 {
		t.Fatal("No geocoding results")
	}
	place := places.Results[0]
	t.Logf("Place: %s, %s (%f, %f)", place.Name, place.Country, place.Latitude, place.Longitude)

	forecaster := NewForecastClient(logger, Options{})

	t.Logf("Making API call to OpenMeteo Forecast API...")
	resp, err := forecaster.GetCurrentWeather(ctx, place.Latitude, place.Longitude, types.UnitImperial)
	if err != nil {
		t.Fatalf("Failed to get current weather: %v", err)
	}

	rawJSON, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	t.Logf("Raw API Response:\n%s", string(rawJSON))

	if resp.CurrentWeather == nil {
		t.Fatal("No current_weather block")
	}
	if got := resp.CurrentWeatherUnits["temperature"]; got != "°F" {
		t.Errorf("temperature unit = %q, want °F", got)
	}
	if got := resp.CurrentWeatherUnits["windspeed"]; got != "mp/h" && got != "mph" {
		t.Errorf("windspeed unit = %q, want mph", got)
	}

	t.Log("✓ API calls successful, response structure valid")
}
