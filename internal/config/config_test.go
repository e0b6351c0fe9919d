package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return dir
}

func TestLoadWithPaths_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadWithPaths(t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithPaths() unexpected error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.App.DefaultUnit != "metric" {
		t.Errorf("App.DefaultUnit = %q, want metric", cfg.App.DefaultUnit)
	}
	if cfg.App.DefaultTheme != "light" {
		t.Errorf("App.DefaultTheme = %q, want light", cfg.App.DefaultTheme)
	}
	if cfg.Geolocation.Timeout != 10*time.Second {
		t.Errorf("Geolocation.Timeout = %v, want 10s", cfg.Geolocation.Timeout)
	}
	if cfg.Providers.BreakerFailures != 5 {
		t.Errorf("Providers.BreakerFailures = %d, want 5", cfg.Providers.BreakerFailures)
	}
	if cfg.Storage.Path != "weather-now.db" {
		t.Errorf("Storage.Path = %q, want weather-now.db", cfg.Storage.Path)
	}
}

func TestLoadWithPaths_FileAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	dir := writeConfig(t, `
server:
  port: 9090
app:
  defaultUnit: imperial
geolocation:
  mode: static
  latitude: 48.8566
  longitude: 2.3522
  timeout: 5s
`)
	t.Setenv("WEATHER_NOW_APP_DEFAULTTHEME", "dark")
	t.Setenv("WEATHER_NOW_SERVER_PORT", "9191")

	cfg, err := LoadWithPaths(dir)
	if err != nil {
		t.Fatalf("LoadWithPaths() unexpected error = %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191 from env", cfg.Server.Port)
	}
	if cfg.App.DefaultUnit != "imperial" {
		t.Errorf("App.DefaultUnit = %q, want imperial", cfg.App.DefaultUnit)
	}
	if cfg.App.DefaultTheme != "dark" {
		t.Errorf("App.DefaultTheme = %q, want dark", cfg.App.DefaultTheme)
	}
	if cfg.Geolocation.Mode != "static" {
		t.Errorf("Geolocation.Mode = %q, want static", cfg.Geolocation.Mode)
	}
	if cfg.Geolocation.Latitude != 48.8566 || cfg.Geolocation.Longitude != 2.3522 {
		t.Errorf("Geolocation coords = %v,%v", cfg.Geolocation.Latitude, cfg.Geolocation.Longitude)
	}
	if cfg.Geolocation.Timeout != 5*time.Second {
		t.Errorf("Geolocation.Timeout = %v, want 5s", cfg.Geolocation.Timeout)
	}
}

func TestLoadWithPaths_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("WEATHER_NOW_STORAGE_PATH=/tmp/from-dotenv.db\n"), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	// registers cleanup for the variable godotenv is about to set
	t.Setenv("WEATHER_NOW_STORAGE_PATH", "")
	os.Unsetenv("WEATHER_NOW_STORAGE_PATH")

	cfg, err := LoadWithPaths(dir)
	if err != nil {
		t.Fatalf("LoadWithPaths() unexpected error = %v", err)
	}
	if cfg.Storage.Path != "/tmp/from-dotenv.db" {
		t.Errorf("Storage.Path = %q, want value from .env", cfg.Storage.Path)
	}
}

func TestLoadWithPaths_UppercaseEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WEATHER_NOW_LOG_LEVEL", "DEBUG")
	t.Setenv("WEATHER_NOW_LOG_FORMAT", "JSON")
	t.Setenv("WEATHER_NOW_APP_DEFAULTUNIT", "Imperial")
	t.Setenv("WEATHER_NOW_GEOLOCATION_MODE", "Disabled")

	cfg, err := LoadWithPaths(t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithPaths() unexpected error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
	if cfg.App.DefaultUnit != "imperial" {
		t.Errorf("App.DefaultUnit = %q, want imperial", cfg.App.DefaultUnit)
	}
	if cfg.Geolocation.Mode != "disabled" {
		t.Errorf("Geolocation.Mode = %q, want disabled", cfg.Geolocation.Mode)
	}
	if !cfg.NewLogger().Enabled(t.Context(), slog.LevelDebug) {
		t.Error("logger should be enabled at debug level")
	}
}

func TestLoadWithPaths_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{
			name:     "unknown unit",
			contents: "app:\n  defaultUnit: kelvin\n",
			wantErr:  "DefaultUnit",
		},
		{
			name:     "unknown geolocation mode",
			contents: "geolocation:\n  mode: gps\n",
			wantErr:  "Mode",
		},
		{
			name:     "latitude out of range",
			contents: "geolocation:\n  latitude: 91\n",
			wantErr:  "Latitude",
		},
		{
			name:     "malformed yaml",
			contents: "server: [",
			wantErr:  "failed to read config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			dir := writeConfig(t, tt.contents)

			_, err := LoadWithPaths(dir)
			if err == nil {
				t.Fatal("LoadWithPaths() expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadWithPaths() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetServerAddr(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: 8080}}
	if got := cfg.GetServerAddr(); got != ":8080" {
		t.Errorf("GetServerAddr() = %q, want :8080", got)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{name: "debug", level: "debug", wantDebug: true, wantInfo: true},
		{name: "info", level: "info", wantDebug: false, wantInfo: true},
		{name: "error", level: "error", wantDebug: false, wantInfo: false},
		{name: "unknown falls back to info", level: "verbose", wantDebug: false, wantInfo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Log: LogConfig{Level: tt.level, Format: "json"}}
			logger := cfg.NewLogger()

			if got := logger.Enabled(t.Context(), slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := logger.Enabled(t.Context(), slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("info enabled = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}
