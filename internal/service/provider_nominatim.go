package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"ecoponto/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const osmDirectionsURL = "https://www.openstreetmap.org/directions"

// nominatimResult mirrors the relevant parts of the OSM search payload
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// NominatimProvider geocodes through OpenStreetMap Nominatim and links to OSM routes
type NominatimProvider struct {
	searchURL string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
	log       logrus.FieldLogger
}

// NewNominatimProvider creates a provider throttled to rps requests per second
func NewNominatimProvider(searchURL, userAgent string, rps float64, client *http.Client, log logrus.FieldLogger) *NominatimProvider {
	return &NominatimProvider{
		searchURL: searchURL,
		userAgent: userAgent,
		client:    client,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		log:       log,
	}
}

func (p *NominatimProvider) Name() string {
	return ProviderNominatim
}

// Geocode performs GET ?format=json&q=<address>&limit=1
func (p *NominatimProvider) Geocode(ctx context.Context, address string) (model.Coordinate, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return model.Coordinate{}, fmt.Errorf("nominatim rate limiter: %w", err)
	}

	params := url.Values{}
	params.Add("format", "json")
	params.Add("q", address)
	params.Add("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return model.Coordinate{}, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.WithError(err).Error("nominatim request failed")
		return model.Coordinate{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		p.log.WithField("status", resp.StatusCode).Error("nominatim upstream error")
		return model.Coordinate{}, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		p.log.WithError(err).Error("failed to decode nominatim payload")
		return model.Coordinate{}, err
	}

	if len(results) == 0 {
		return model.Coordinate{}, ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	p.log.WithField("match", results[0].DisplayName).Debug("address geocoded")

	return model.Coordinate{Latitude: lat, Longitude: lon}, nil
}

// DirectionsURL links to an OSRM car route on openstreetmap.org
func (p *NominatimProvider) DirectionsURL(origin, destination model.Coordinate) string {
	return fmt.Sprintf("%s?engine=osrm_car&route=%s%%2C%s%%3B%s%%2C%s",
		osmDirectionsURL,
		model.FormatDegrees(origin.Latitude), model.FormatDegrees(origin.Longitude),
		model.FormatDegrees(destination.Latitude), model.FormatDegrees(destination.Longitude),
	)
}
