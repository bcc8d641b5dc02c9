// Package common holds the domain error taxonomy and the HTTP response
// helpers shared by all handlers.
package common

import (
	"errors"
	"net/http"
)

// Domain errors returned by repositories and services. The gateway maps
// each one to a distinct, stable response code.
var (
	// ErrInvalidCredentials covers both unknown username and password
	// mismatch, so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden means the caller is authenticated but not authorized
	// for the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means a referenced id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("conflict")
	// ErrValidation means the input was malformed.
	ErrValidation = errors.New("validation failed")
	// ErrUnavailable hides internal storage faults; safe to retry.
	ErrUnavailable = errors.New("service unavailable")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
// Unrecognized errors are treated as internal storage faults and map
// to 503 so the caller knows a retry is safe.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusServiceUnavailable
	}
}
