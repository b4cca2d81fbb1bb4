package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecoponto/internal/config"
	"ecoponto/internal/logger"
	"ecoponto/internal/model"
)

func TestNominatimProvider_Geocode(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     model.Coordinate
		notFound bool
		wantErr  bool
	}{
		{
			name:   "first result",
			status: http.StatusOK,
			body:   `[{"lat":"-23.5613","lon":"-46.6565","display_name":"Avenida Paulista"}]`,
			want:   model.Coordinate{Latitude: -23.5613, Longitude: -46.6565},
		},
		{
			name:     "no results",
			status:   http.StatusOK,
			body:     `[]`,
			notFound: true,
		},
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			body:    `rate limited`,
			wantErr: true,
		},
		{
			name:    "bad latitude",
			status:  http.StatusOK,
			body:    `[{"lat":"north","lon":"-46.6"}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("format") != "json" || q.Get("limit") != "1" || q.Get("q") != "Rua Inexistente 999" {
					t.Errorf("unexpected query %s", r.URL.RawQuery)
				}
				if r.Header.Get("User-Agent") != "ecoponto-test" {
					t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewNominatimProvider(server.URL, "ecoponto-test", 100, server.Client(), logger.Discard())
			got, err := p.Geocode(context.Background(), "Rua Inexistente 999")

			switch {
			case tt.notFound:
				if !errors.Is(err, ErrAddressNotFound) {
					t.Fatalf("expected ErrAddressNotFound, got %v", err)
				}
			case tt.wantErr:
				if err == nil || errors.Is(err, ErrAddressNotFound) {
					t.Fatalf("expected a failure, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("Geocode() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("Geocode() = %+v, want %+v", got, tt.want)
				}
			}
		})
	}
}

func TestNominatimProvider_Throttle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	p := NewNominatimProvider(server.URL, "ecoponto-test", 0.01, server.Client(), logger.Discard())
	if _, err := p.Geocode(context.Background(), "a"); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("first call should pass the limiter, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := p.Geocode(ctx, "b")
	if err == nil || errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("second call should be held by the limiter, got %v", err)
	}
}

func TestNominatimProvider_DirectionsURL(t *testing.T) {
	p := &NominatimProvider{}
	got := p.DirectionsURL(model.Coordinate{Latitude: -23.5, Longitude: -46.6}, model.Coordinate{Latitude: 1, Longitude: 2})
	want := "https://www.openstreetmap.org/directions?engine=osrm_car&route=-23.5%2C-46.6%3B1%2C2"
	if got != want {
		t.Errorf("DirectionsURL() = %s, want %s", got, want)
	}
}

func TestGoogleProvider_Geocode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		want     model.Coordinate
		notFound bool
		wantErr  bool
	}{
		{
			name: "ok",
			body: `{"status":"OK","results":[{"formatted_address":"Av. Paulista","geometry":{"location":{"lat":-23.56,"lng":-46.65}}}]}`,
			want: model.Coordinate{Latitude: -23.56, Longitude: -46.65},
		},
		{
			name:     "zero results",
			body:     `{"status":"ZERO_RESULTS","results":[]}`,
			notFound: true,
		},
		{
			name:    "denied",
			body:    `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("key") != "secret" || r.URL.Query().Get("address") != "Av Paulista 1000" {
					t.Errorf("unexpected query %s", r.URL.RawQuery)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewGoogleProvider(server.URL, "secret", server.Client(), logger.Discard())
			got, err := p.Geocode(context.Background(), "Av Paulista 1000")

			switch {
			case tt.notFound:
				if !errors.Is(err, ErrAddressNotFound) {
					t.Fatalf("expected ErrAddressNotFound, got %v", err)
				}
			case tt.wantErr:
				if err == nil || !strings.Contains(err.Error(), "REQUEST_DENIED") {
					t.Fatalf("expected REQUEST_DENIED failure, got %v", err)
				}
			default:
				if err != nil || got != tt.want {
					t.Fatalf("Geocode() = %+v, %v", got, err)
				}
			}
		})
	}
}

func TestGoogleProvider_DirectionsURL(t *testing.T) {
	p := &GoogleProvider{}
	got := p.DirectionsURL(model.Coordinate{Latitude: -23.5, Longitude: -46.6}, model.Coordinate{Latitude: 1, Longitude: 2})
	for _, part := range []string{"https://www.google.com/maps/dir/?", "api=1", "origin=-23.5%2C-46.6", "destination=1%2C2"} {
		if !strings.Contains(got, part) {
			t.Errorf("DirectionsURL() = %s, missing %s", got, part)
		}
	}
}

func TestNewMapsProvider(t *testing.T) {
	base := config.GeocodingConfig{
		NominatimURL: "https://nominatim.openstreetmap.org/search",
		UserAgent:    "ecoponto-test",
		RequestsPerS: 1,
		GoogleURL:    "https://maps.googleapis.com/maps/api/geocode/json",
		GoogleAPIKey: "k",
		Timeout:      5,
	}

	for _, name := range []string{ProviderNominatim, ProviderGoogle} {
		cfg := base
		cfg.Provider = name
		p, err := NewMapsProvider(&cfg, logger.Discard())
		if err != nil {
			t.Fatalf("NewMapsProvider(%s) error = %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("Name() = %s, want %s", p.Name(), name)
		}
	}

	cfg := base
	cfg.Provider = "bing"
	if _, err := NewMapsProvider(&cfg, logger.Discard()); err == nil {
		t.Error("expected unknown provider error")
	}
}

func TestPresenter_GeocodeFailureHint(t *testing.T) {
	if got := NewPresenter(&GoogleProvider{}).GeocodeFailure(); got != msgGeocodeFailed {
		t.Errorf("google hint = %q", got)
	}
	if got := NewPresenter(&NominatimProvider{}).GeocodeFailure(); !strings.Contains(got, "Nominatim") {
		t.Errorf("nominatim hint = %q", got)
	}
}
