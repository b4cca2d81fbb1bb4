package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Backend     BackendConfig
	Geocoding   GeocodingConfig
	Geolocation GeolocationConfig
	Logging     LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int    `validate:"min=1,max=65535"`
	Host           string
	GinMode        string `validate:"oneof=debug release test"`
	AllowedOrigins string
	SessionTTL     int `validate:"min=1"` // minutes
}

// BackendConfig holds the recycling backend (classification + points) configuration
type BackendConfig struct {
	BaseURL string `validate:"required,url"`
	Timeout int    `validate:"min=0"` // seconds, 0 disables the timeout
}

// GeocodingConfig holds address geocoding configuration
type GeocodingConfig struct {
	Provider     string  `validate:"oneof=nominatim google"`
	NominatimURL string  `validate:"required,url"`
	UserAgent    string  `validate:"required"`
	RequestsPerS float64 `validate:"gt=0"`
	GoogleURL    string  `validate:"required,url"`
	GoogleAPIKey string  `validate:"required_if=Provider google"`
	Timeout      int     `validate:"min=1"` // seconds
}

// GeolocationConfig holds device position request options
type GeolocationConfig struct {
	HighAccuracy bool
	Timeout      int `validate:"min=1"` // milliseconds
	MaximumAge   int `validate:"min=0"` // milliseconds
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `validate:"oneof=debug info warn error"`
	Format string `validate:"oneof=json text"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			SessionTTL:     getEnvAsInt("SESSION_TTL_MINUTES", 30),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("RECYCLING_API_BASE", "http://localhost:5000"),
			Timeout: getEnvAsInt("RECYCLING_API_TIMEOUT", 0),
		},
		Geocoding: GeocodingConfig{
			Provider:     getEnv("GEOCODING_PROVIDER", "nominatim"),
			NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
			UserAgent:    getEnv("NOMINATIM_USER_AGENT", "ecoponto/1.0"),
			RequestsPerS: getEnvAsFloat("NOMINATIM_RPS", 1),
			GoogleURL:    getEnv("GOOGLE_MAPS_URL", "https://maps.googleapis.com/maps/api/geocode/json"),
			GoogleAPIKey: getEnv("MAPS_API_KEY", ""),
			Timeout:      getEnvAsInt("GEOCODING_TIMEOUT", 10),
		},
		Geolocation: GeolocationConfig{
			HighAccuracy: getEnvAsBool("GEOLOCATION_HIGH_ACCURACY", true),
			Timeout:      getEnvAsInt("GEOLOCATION_TIMEOUT_MS", 5000),
			MaximumAge:   getEnvAsInt("GEOLOCATION_MAXIMUM_AGE_MS", 0),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags of every section
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ServerAddr returns the host:port the HTTP server listens on
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// SessionIdleTimeout returns how long an idle page session is kept
func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.Server.SessionTTL) * time.Minute
}

// BackendTimeout returns the backend client timeout, zero when disabled
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.Timeout) * time.Second
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}
