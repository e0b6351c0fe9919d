package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"weather-now/internal/config"
	"weather-now/internal/dashboard"
	"weather-now/internal/geolocation"
	"weather-now/internal/recent"
	"weather-now/internal/storage"
	"weather-now/internal/types"
	"weather-now/internal/weather"
)

// fakeWeatherService answers every city except "Atlantis" and every coordinate
type fakeWeatherService struct {
	mu          sync.Mutex
	coordsCalls []types.Coords
}

func (f *fakeWeatherService) ResolvePlace(ctx context.Context, city string) (types.Place, types.Coords, error) {
	if city == "Atlantis" {
		return types.Place{}, types.Coords{}, &weather.LookupError{Stage: weather.StageGeocoding, Kind: weather.ErrNotFound}
	}
	return types.Place{Name: city, Country: "France"}, types.NewCoords(48.85341, 2.3488), nil
}

func (f *fakeWeatherService) FetchCurrentWeather(ctx context.Context, coords types.Coords, unit types.Unit) (*types.Snapshot, error) {
	f.mu.Lock()
	f.coordsCalls = append(f.coordsCalls, coords)
	f.mu.Unlock()
	return &types.Snapshot{
		Temperature:   18.4,
		WindSpeed:     11.2,
		WindDirection: 248,
		WeatherCode:   61,
		Time:          time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC),
		Latitude:      coords.Latitude,
		Longitude:     coords.Longitude,
		Unit:          unit,
	}, nil
}

func (f *fakeWeatherService) GetWeatherByCity(ctx context.Context, city string, unit types.Unit) (*types.Snapshot, error) {
	place, coords, err := f.ResolvePlace(ctx, city)
	if err != nil {
		return nil, err
	}
	snapshot, err := f.FetchCurrentWeather(ctx, coords, unit)
	if err != nil {
		return nil, err
	}
	return snapshot.WithPlace(place), nil
}

func (f *fakeWeatherService) GetWeatherByCoords(ctx context.Context, coords types.Coords, unit types.Unit, place types.Place) (*types.Snapshot, error) {
	snapshot, err := f.FetchCurrentWeather(ctx, coords, unit)
	if err != nil {
		return nil, err
	}
	return snapshot.WithPlace(place), nil
}

func newTestApp(t *testing.T) (*App, *fakeWeatherService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := storage.NewSQLite(t.TempDir()+"/test.db", logger)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	svc := &fakeWeatherService{}
	recentSearches := recent.Open(context.Background(), store, logger)
	locator := geolocation.NewStatic(types.NewCoords(45.764, 4.8357))
	controller := dashboard.NewController(svc, recentSearches, dashboard.Options{Locator: locator}, logger)

	return newApp(controller, recentSearches, locator, 5*time.Second, logger), svc
}

func doRequest(t *testing.T, app *App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) dashboard.View {
	t.Helper()
	var view dashboard.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode view: %v (body %s)", err, rec.Body.String())
	}
	return view
}

func TestPing(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doRequest(t, app, http.MethodGet, "/ping", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"pong"`) {
		t.Errorf("body = %s, want pong", rec.Body.String())
	}
}

func TestSearchFlow(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doRequest(t, app, http.MethodPost, "/dashboard/search", `{"city": "Paris"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	if view.Status != dashboard.StatusReady {
		t.Fatalf("Status = %q, want ready", view.Status)
	}
	if view.Weather.Name != "Paris" || view.Weather.TemperatureLabel != "18°C" {
		t.Errorf("Weather = %+v, want Paris at 18°C", view.Weather)
	}
	if view.Sky != types.SkyRainLight || view.Background != dashboard.BackgroundRain {
		t.Errorf("Sky = %q, Background = %q, want rain-light and rain", view.Sky, view.Background)
	}

	rec = doRequest(t, app, http.MethodGet, "/recent-searches", "")
	if !strings.Contains(rec.Body.String(), `"Paris"`) {
		t.Errorf("recent searches = %s, want Paris", rec.Body.String())
	}
}

func TestLookupFailureIsState(t *testing.T) {
	app, _ := newTestApp(t)

	rec := doRequest(t, app, http.MethodPost, "/dashboard/search", `{"city": "Atlantis"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	view := decodeView(t, rec)
	if view.Status != dashboard.StatusError || view.Error != "City not found" {
		t.Errorf("Status = %q, Error = %q, want error City not found", view.Status, view.Error)
	}

	rec = doRequest(t, app, http.MethodPost, "/dashboard/dismiss", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dismiss status = %d, want 200", rec.Code)
	}
	if view := decodeView(t, rec); view.Status != dashboard.StatusIdle {
		t.Errorf("Status = %q, want idle", view.Status)
	}
}

func TestInvalidTransitionIsConflict(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/dashboard/retry", "/dashboard/dismiss"} {
		rec := doRequest(t, app, http.MethodPost, path, "")
		if rec.Code != http.StatusConflict {
			t.Errorf("%s status = %d, want 409", path, rec.Code)
		}
	}
}

func TestUseLocation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantState   dashboard.Status
		wantMessage string
		wantCoords  *types.Coords
	}{
		{
			name:       "configured locator",
			body:       "",
			wantStatus: http.StatusOK,
			wantState:  dashboard.StatusReady,
			wantCoords: &types.Coords{Latitude: 45.764, Longitude: 4.8357},
		},
		{
			name:       "browser position",
			body:       `{"latitude": 40.7128, "longitude": -74.006}`,
			wantStatus: http.StatusOK,
			wantState:  dashboard.StatusReady,
			wantCoords: &types.Coords{Latitude: 40.7128, Longitude: -74.006},
		},
		{
			name:        "browser denial",
			body:        `{"error_code": 1}`,
			wantStatus:  http.StatusOK,
			wantState:   dashboard.StatusError,
			wantMessage: "Geolocation permission denied. Please search by city.",
		},
		{
			name:        "browser timeout",
			body:        `{"error_code": 3}`,
			wantStatus:  http.StatusOK,
			wantState:   dashboard.StatusError,
			wantMessage: "Failed to get geolocation. Try searching a city.",
		},
		{
			name:       "half a position",
			body:       `{"latitude": 40.7128}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "latitude out of range",
			body:       `{"latitude": 140, "longitude": 0}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, svc := newTestApp(t)

			rec := doRequest(t, app, http.MethodPost, "/dashboard/location", tt.body)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			view := decodeView(t, rec)
			if view.Status != tt.wantState {
				t.Errorf("Status = %q, want %q", view.Status, tt.wantState)
			}
			if view.Error != tt.wantMessage {
				t.Errorf("Error = %q, want %q", view.Error, tt.wantMessage)
			}
			if tt.wantCoords != nil {
				if len(svc.coordsCalls) != 1 || svc.coordsCalls[0] != *tt.wantCoords {
					t.Errorf("coords calls = %v, want [%v]", svc.coordsCalls, *tt.wantCoords)
				}
				if view.Weather.Name != dashboard.YourLocation {
					t.Errorf("Name = %q, want %q", view.Weather.Name, dashboard.YourLocation)
				}
			}
		})
	}
}

func TestChangeUnitAndTheme(t *testing.T) {
	app, _ := newTestApp(t)

	doRequest(t, app, http.MethodPost, "/dashboard/search", `{"city": "Paris"}`)

	rec := doRequest(t, app, http.MethodPut, "/dashboard/unit", `{"unit": "imperial"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unit status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	if view.Unit != types.UnitImperial || view.Weather.TemperatureLabel != "18°F" {
		t.Errorf("Unit = %q, label = %q, want imperial and °F", view.Unit, view.Weather.TemperatureLabel)
	}

	rec = doRequest(t, app, http.MethodPut, "/dashboard/unit", `{"unit": "kelvin"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid unit status = %d, want 422", rec.Code)
	}

	rec = doRequest(t, app, http.MethodPut, "/dashboard/theme", `{"theme": "dark"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("theme status = %d, want 200", rec.Code)
	}
	if view := decodeView(t, rec); view.Theme != types.ThemeDark {
		t.Errorf("Theme = %q, want dark", view.Theme)
	}
}

func TestNewLocator(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	static := newLocator(configFor("static", 48.8566, 2.3522), logger)
	coords, err := static.Locate(context.Background())
	if err != nil || coords != types.NewCoords(48.8566, 2.3522) {
		t.Errorf("static Locate() = %v, %v", coords, err)
	}

	disabled := newLocator(configFor("disabled", 0, 0), logger)
	_, err = disabled.Locate(context.Background())
	var geoErr *geolocation.Error
	if !errors.As(err, &geoErr) || geoErr.Code != geolocation.PermissionDenied {
		t.Errorf("disabled Locate() error = %v, want permission denied", err)
	}

	if _, ok := newLocator(configFor("ip", 0, 0), logger).(*geolocation.IPLocator); !ok {
		t.Error("ip mode should build an *geolocation.IPLocator")
	}
}

func configFor(mode string, latitude, longitude float64) config.GeolocationConfig {
	return config.GeolocationConfig{Mode: mode, Latitude: latitude, Longitude: longitude}
}
