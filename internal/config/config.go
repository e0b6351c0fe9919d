package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	App         AppConfig
	Providers   ProvidersConfig
	Geolocation GeolocationConfig
	Storage     StorageConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           int           `validate:"min=1,max=65535"`
	RequestTimeout time.Duration `validate:"gt=0"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"omitempty,oneof=debug info warn warning error"` // debug, info, warn, error
	Format string `validate:"omitempty,oneof=json text"`                     // json, text
}

// AppConfig holds the dashboard preferences a fresh session starts with
type AppConfig struct {
	DefaultUnit  string `validate:"oneof=metric imperial"`
	DefaultTheme string `validate:"oneof=light dark"`
}

// ProvidersConfig holds settings for the Open-Meteo APIs
type ProvidersConfig struct {
	GeocodingURL    string        `validate:"omitempty,url"`
	ForecastURL     string        `validate:"omitempty,url"`
	HTTPTimeout     time.Duration `validate:"gt=0"`
	BreakerFailures uint32        `validate:"min=1"`
}

// GeolocationConfig selects how the server locates the user
type GeolocationConfig struct {
	Mode           string        `validate:"oneof=static ip disabled"` // static, ip, disabled
	Latitude       float64       `validate:"min=-90,max=90"`
	Longitude      float64       `validate:"min=-180,max=180"`
	Timeout        time.Duration `validate:"gt=0"`
	IPURL          string        `validate:"omitempty,url"`
	ReverseGeocode bool
}

// StorageConfig holds the location of the local database
type StorageConfig struct {
	Path string `validate:"required"`
}

// Load reads configuration from .env, the config file and environment variables
func Load() (*Config, error) {
	return LoadWithPaths(".", "./config", "$HOME/.weather-now")
}

// LoadWithPaths is Load with explicit config file search paths
func LoadWithPaths(paths ...string) (*Config, error) {
	// Values already in the environment win over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.requestTimeout", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("app.defaultUnit", "metric")
	v.SetDefault("app.defaultTheme", "light")
	v.SetDefault("providers.geocodingURL", "")
	v.SetDefault("providers.forecastURL", "")
	v.SetDefault("providers.httpTimeout", 10*time.Second)
	v.SetDefault("providers.breakerFailures", 5)
	v.SetDefault("geolocation.mode", "ip")
	v.SetDefault("geolocation.latitude", 0.0)
	v.SetDefault("geolocation.longitude", 0.0)
	v.SetDefault("geolocation.timeout", 10*time.Second)
	v.SetDefault("geolocation.ipURL", "")
	v.SetDefault("geolocation.reverseGeocode", false)
	v.SetDefault("storage.path", "weather-now.db")

	// Read from environment variables, e.g. WEATHER_NOW_SERVER_PORT
	v.SetEnvPrefix("WEATHER_NOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// normalize lowercases the enumerated settings so LOG_LEVEL=DEBUG is accepted
func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.App.DefaultUnit = strings.ToLower(strings.TrimSpace(c.App.DefaultUnit))
	c.App.DefaultTheme = strings.ToLower(strings.TrimSpace(c.App.DefaultTheme))
	c.Geolocation.Mode = strings.ToLower(strings.TrimSpace(c.Geolocation.Mode))
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
