// Package apperr provides the typed errors returned by the lookup flow.
// Every error carries the user-facing message that the view layer shows.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind string

const (
	// KindValidation is rejected input caught before any network call.
	KindValidation Kind = "validation"
	// KindBackend is a non-2xx answer or an error field from the recycling backend.
	KindBackend Kind = "backend"
	// KindNetwork is a transport, decoding, geocoding or geolocation failure.
	KindNetwork Kind = "network"
	// KindNotFound is a geocoding lookup without results.
	KindNotFound Kind = "not_found"
	// KindSuperseded marks a response that arrived after a newer query started.
	KindSuperseded Kind = "superseded"
)

// Error is a lookup error with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status the web transport answers with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindBackend, KindNetwork:
		return http.StatusBadGateway
	case KindSuperseded:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WithOp sets the failing operation.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// New creates a new error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new error wrapping an existing one.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Backend(message string) *Error {
	return New(KindBackend, message)
}

func Network(message string, err error) *Error {
	return Wrap(KindNetwork, message, err)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// ErrSuperseded is returned when a newer classification made a response stale.
var ErrSuperseded = New(KindSuperseded, "superseded by a newer query")

// GetKind extracts the kind from anywhere in an error chain, empty when absent.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// Status maps any error to an HTTP status.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}
