package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "GIN_MODE", "RECYCLING_API_BASE", "RECYCLING_API_TIMEOUT",
		"GEOCODING_PROVIDER", "MAPS_API_KEY", "GEOLOCATION_TIMEOUT_MS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Geocoding.Provider != "nominatim" {
		t.Errorf("Provider = %q, want nominatim", cfg.Geocoding.Provider)
	}
	if cfg.BackendTimeout() != 0 {
		t.Errorf("BackendTimeout() = %v, want no timeout", cfg.BackendTimeout())
	}
	if cfg.Geolocation.Timeout != 5000 || cfg.Geolocation.MaximumAge != 0 || !cfg.Geolocation.HighAccuracy {
		t.Errorf("unexpected geolocation defaults: %+v", cfg.Geolocation)
	}
	if cfg.SessionIdleTimeout() != 30*time.Minute {
		t.Errorf("SessionIdleTimeout() = %v", cfg.SessionIdleTimeout())
	}
	if cfg.ServerAddr() != "0.0.0.0:8080" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{
			name:    "google provider without key",
			env:     map[string]string{"GEOCODING_PROVIDER": "google", "MAPS_API_KEY": ""},
			wantErr: true,
		},
		{
			name:    "google provider with key",
			env:     map[string]string{"GEOCODING_PROVIDER": "google", "MAPS_API_KEY": "abc"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"GEOCODING_PROVIDER": "bing"},
			wantErr: true,
		},
		{
			name:    "bad log format",
			env:     map[string]string{"LOG_FORMAT": "xml"},
			wantErr: true,
		},
		{
			name:    "invalid integer falls back to default",
			env:     map[string]string{"SERVER_PORT": "not-a-port"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"GEOCODING_PROVIDER", "MAPS_API_KEY", "LOG_FORMAT", "SERVER_PORT"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
