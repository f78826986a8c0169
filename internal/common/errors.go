// Package common defines shared constants and sentinel errors used across
// the transport, service and repository layers of todokeeper. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors for incoming requests.
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrMissingHeader       = errors.New("no authentication header")
	ErrInvalidHeaderFormat = errors.New("invalid authentication header")
	ErrInvalidToken        = errors.New("invalid token")

	// Configuration errors.
	ErrUnknownBackend = errors.New("unknown store backend")
)

// IsAuthError reports whether err is one of the bearer token errors.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingHeader) ||
		errors.Is(err, ErrInvalidHeaderFormat) ||
		errors.Is(err, ErrInvalidToken)
}
