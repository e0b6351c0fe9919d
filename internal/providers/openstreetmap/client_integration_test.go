//go:build integration

package openstreetmap

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestClient_Lookup_Integration(t *testing.T) {
	// Test coordinates: Aspen, CO area
	lat := 39.19110
	lon := -106.81754

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	client := NewClient(logger, 10*time.Second)

	t.Logf("Making API call to OpenStreetMap Nominatim API...")
	t.Logf("Coordinates: lat=%f, lon=%f", lat, lon)

	resp, err := client.Lookup(context.Background(), lat, lon)
	if err != nil {
		t.Fatalf("Failed to get location data: %v", err)
	}

	rawJSON, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	t.Logf("Raw API Response:\n%s", string(rawJSON))

	if resp.DisplayName == "" {
		t.Error("DisplayName is empty")
	}
	if resp.Address.Country == "" {
		t.Error("Country is empty")
	}
	t.Logf("  Locality: %s", resp.Address.Locality())

	t.Log("✓ API call successful, response structure valid")
}
