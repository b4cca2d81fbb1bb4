package service

import (
	"context"
	"errors"
	"time"

	"ecoponto/internal/config"
	"ecoponto/internal/model"
)

// ErrPositionUnsupported means the client has no way to report its position
var ErrPositionUnsupported = errors.New("geolocation not supported")

// PositionError is a failed position request (permission denied, timeout, unavailable)
type PositionError struct {
	Reason string
}

func (e *PositionError) Error() string {
	return "geolocation failed: " + e.Reason
}

// PositionOptions are the device position request options
type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// defaultPositionOptions asks for a fresh high-accuracy fix within five seconds
var defaultPositionOptions = PositionOptions{
	HighAccuracy: true,
	Timeout:      5 * time.Second,
	MaximumAge:   0,
}

// PositionOptionsFrom converts the geolocation configuration. A config without
// a timeout yields the defaults.
func PositionOptionsFrom(cfg config.GeolocationConfig) PositionOptions {
	if cfg.Timeout <= 0 {
		return defaultPositionOptions
	}
	return PositionOptions{
		HighAccuracy: cfg.HighAccuracy,
		Timeout:      time.Duration(cfg.Timeout) * time.Millisecond,
		MaximumAge:   time.Duration(cfg.MaximumAge) * time.Millisecond,
	}
}

// PositionSource yields the device's current position
type PositionSource interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (model.Coordinate, error)
}

// BrowserPosition is a position (or the failure) the page's geolocation API reported
type BrowserPosition struct {
	Coordinate *model.Coordinate
	Failure    string // "unsupported", "denied", "timeout" or "unavailable"
}

// CurrentPosition returns the reported coordinate or maps the reported failure
func (b BrowserPosition) CurrentPosition(ctx context.Context, _ PositionOptions) (model.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return model.Coordinate{}, &PositionError{Reason: "timeout"}
	}
	switch {
	case b.Failure == "unsupported":
		return model.Coordinate{}, ErrPositionUnsupported
	case b.Failure != "":
		return model.Coordinate{}, &PositionError{Reason: b.Failure}
	case b.Coordinate == nil:
		return model.Coordinate{}, &PositionError{Reason: "unavailable"}
	}
	return *b.Coordinate, nil
}

// StaticPosition always reports the same coordinate
type StaticPosition model.Coordinate

func (s StaticPosition) CurrentPosition(ctx context.Context, _ PositionOptions) (model.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return model.Coordinate{}, &PositionError{Reason: "timeout"}
	}
	return model.Coordinate(s), nil
}

// currentPosition bounds the request by opts.Timeout. A nil source is unsupported.
func currentPosition(ctx context.Context, src PositionSource, opts PositionOptions) (model.Coordinate, error) {
	if src == nil {
		return model.Coordinate{}, ErrPositionUnsupported
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	coord, err := src.CurrentPosition(ctx, opts)
	if err != nil {
		return model.Coordinate{}, err
	}
	if ctx.Err() != nil {
		return model.Coordinate{}, &PositionError{Reason: "timeout"}
	}
	return coord, nil
}
