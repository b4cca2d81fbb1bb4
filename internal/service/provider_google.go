package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"ecoponto/internal/model"

	"github.com/sirupsen/logrus"
)

const googleDirectionsURL = "https://www.google.com/maps/dir/"

// googleGeocodeResponse mirrors the relevant parts of the Geocoding API payload
type googleGeocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GoogleProvider geocodes through the Google Maps Geocoding API
type GoogleProvider struct {
	geocodeURL string
	apiKey     string
	client     *http.Client
	log        logrus.FieldLogger
}

// NewGoogleProvider creates a Google Maps provider
func NewGoogleProvider(geocodeURL, apiKey string, client *http.Client, log logrus.FieldLogger) *GoogleProvider {
	return &GoogleProvider{
		geocodeURL: geocodeURL,
		apiKey:     apiKey,
		client:     client,
		log:        log,
	}
}

func (p *GoogleProvider) Name() string {
	return ProviderGoogle
}

// Geocode performs GET ?address=<address>&key=<key>
func (p *GoogleProvider) Geocode(ctx context.Context, address string) (model.Coordinate, error) {
	params := url.Values{}
	params.Add("address", address)
	params.Add("key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.geocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return model.Coordinate{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.WithError(err).Error("google geocoding request failed")
		return model.Coordinate{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		p.log.WithField("status", resp.StatusCode).Error("google geocoding upstream error")
		return model.Coordinate{}, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		p.log.WithError(err).Error("failed to decode google geocoding payload")
		return model.Coordinate{}, err
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return model.Coordinate{}, ErrAddressNotFound
	default:
		p.log.WithFields(logrus.Fields{
			"status":  payload.Status,
			"message": payload.ErrorMessage,
		}).Error("google geocoding rejected request")
		return model.Coordinate{}, fmt.Errorf("geocoding status %s: %s", payload.Status, payload.ErrorMessage)
	}

	if len(payload.Results) == 0 {
		return model.Coordinate{}, ErrAddressNotFound
	}

	loc := payload.Results[0].Geometry.Location
	return model.Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

// DirectionsURL links to a Google Maps route
func (p *GoogleProvider) DirectionsURL(origin, destination model.Coordinate) string {
	params := url.Values{}
	params.Add("api", "1")
	params.Add("origin", origin.String())
	params.Add("destination", destination.String())
	return googleDirectionsURL + "?" + params.Encode()
}
