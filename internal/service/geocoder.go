package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ecoponto/internal/config"
	"ecoponto/internal/model"

	"github.com/sirupsen/logrus"
)

// ErrAddressNotFound is returned when geocoding yields no result
var ErrAddressNotFound = errors.New("address not found")

const (
	ProviderNominatim = "nominatim"
	ProviderGoogle    = "google"
)

// MapsProvider geocodes addresses and builds route links for one map service
type MapsProvider interface {
	// Name identifies the provider ("nominatim" or "google")
	Name() string

	// Geocode resolves a free-text address to the coordinate of its first match
	Geocode(ctx context.Context, address string) (model.Coordinate, error)

	// DirectionsURL links to a route from origin to destination
	DirectionsURL(origin, destination model.Coordinate) string
}

// NewMapsProvider selects the provider named in the geocoding configuration
func NewMapsProvider(cfg *config.GeocodingConfig, log logrus.FieldLogger) (MapsProvider, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	}

	switch cfg.Provider {
	case ProviderNominatim, "":
		log.WithField("endpoint", cfg.NominatimURL).Info("using Nominatim geocoding")
		return NewNominatimProvider(cfg.NominatimURL, cfg.UserAgent, cfg.RequestsPerS, httpClient, log), nil
	case ProviderGoogle:
		log.WithField("endpoint", cfg.GoogleURL).Info("using Google geocoding")
		return NewGoogleProvider(cfg.GoogleURL, cfg.GoogleAPIKey, httpClient, log), nil
	default:
		return nil, fmt.Errorf("unknown geocoding provider %q", cfg.Provider)
	}
}
