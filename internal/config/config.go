// Package config loads the settings of the onecall application from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/wxpanel/onecall/internal/weather"
)

// ErrMissingAPIKey is returned by Validate when no API key is configured.
var ErrMissingAPIKey = errors.New("OWM_API_KEY is required")

// Config holds the application configuration.
type Config struct {
	APIKey     string
	Units      weather.Units
	OneCallURL string

	Lat float64
	Lon float64

	Current bool
	Minutes uint
	Hours   uint
	Days    uint

	HTTPTimeout  time.Duration
	PollInterval time.Duration
	Once         bool

	LogLevel zerolog.Level

	Environment     string
	TelemetryOn     bool
	OTLPEndpoint    string
	MetricsInterval time.Duration
}

// FromEnv creates a Config from environment variables.
func FromEnv() Config {
	return Config{
		APIKey:     os.Getenv("OWM_API_KEY"),
		Units:      weather.ParseUnits(getEnvOrDefault("OWM_UNITS", string(weather.UnitsMetric))),
		OneCallURL: os.Getenv("OWM_ONECALL_URL"),

		Lat: getEnvFloat("OWM_LAT", 0),
		Lon: getEnvFloat("OWM_LON", 0),

		Current: getEnvBool("OWM_CURRENT", true),
		Minutes: getEnvUint("OWM_MINUTES", 0),
		Hours:   getEnvUint("OWM_HOURS", 12),
		Days:    getEnvUint("OWM_DAYS", 8),

		HTTPTimeout:  getEnvDuration("OWM_HTTP_TIMEOUT", 10*time.Second),
		PollInterval: getEnvDuration("OWM_POLL_INTERVAL", 15*time.Minute),
		Once:         getEnvBool("OWM_ONCE", false),

		LogLevel: getEnvLevel("LOG_LEVEL", zerolog.InfoLevel),

		Environment:     getEnvOrDefault("APP_ENV", "development"),
		TelemetryOn:     getEnvBool("OTEL_ENABLED", false),
		OTLPEndpoint:    getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		MetricsInterval: getEnvDuration("OTEL_METRIC_EXPORT_INTERVAL", time.Minute),
	}
}

// Validate reports configuration the application cannot run without.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint) uint {
	if v, err := strconv.ParseUint(os.Getenv(key), 10, 0); err == nil {
		return uint(v)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getEnvLevel(key string, defaultValue zerolog.Level) zerolog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if level, err := zerolog.ParseLevel(value); err == nil {
		return level
	}
	return defaultValue
}
