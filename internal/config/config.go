// Package config loads service configuration from the environment.
//
// Loading order: a .env file in the working directory (optional, never
// overrides the process environment), then envconfig tags, then validation.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"customer-route-service/internal/platform/validate"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Optional. Without it the customer endpoints answer 503 and geocoding is not persisted.
	DatabaseURL string `envconfig:"DATABASE_URL" validate:"omitempty,url"`
	// Optional. Without it conditions are cached in process memory.
	RedisURL string `envconfig:"REDIS_URL" validate:"omitempty,url"`

	OSRMBaseURL     string  `envconfig:"OSRM_BASE_URL" default:"https://router.project-osrm.org" validate:"required,url"`
	WeatherBaseURL  string  `envconfig:"WEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5" validate:"required,url"`
	WeatherAPIKey   string  `envconfig:"WEATHER_API_KEY"`
	TrafficBaseURL  string  `envconfig:"TRAFFIC_BASE_URL" default:"http://localhost:3001/api/traffic" validate:"required,url"`
	GeocoderBaseURL string  `envconfig:"GEOCODER_BASE_URL" default:"https://nominatim.openstreetmap.org" validate:"required,url"`
	GeocoderRPS     float64 `envconfig:"GEOCODER_RPS" default:"1" validate:"gt=0"`
	UserAgent       string  `envconfig:"USER_AGENT" default:"customer-route-service/1.0" validate:"required"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s" validate:"gt=0"`
	SeedPath    string        `envconfig:"SEED_PATH" default:"data/seeds/customers.json"`
}

type ConfigErrorType string

const (
	ErrParsing    ConfigErrorType = "PARSING_FAILED"
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
)

// ConfigError reports why Load failed.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Load reads the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	if err := validate.New().Struct(cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: validate.Describe(err),
			Err:     err,
		}
	}

	return &cfg, nil
}

// SlogLevel maps LogLevel onto slog levels.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
