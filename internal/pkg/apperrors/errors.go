package apperrors

import "errors"

// Standard application errors
var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when the input provided by the caller or the environment is invalid.
	ErrInvalidInput = errors.New("invalid input provided")

	// ErrExternalServiceFailure is returned when an interaction with an external service fails.
	ErrExternalServiceFailure = errors.New("external service interaction failed")

	// ErrTimeout is returned when an operation times out.
	ErrTimeout = errors.New("operation timed out")

	// ErrInternal is returned for unexpected internal system errors.
	ErrInternal = errors.New("internal system error")

	// ErrUnavailable is returned when an optional capability is switched off.
	ErrUnavailable = errors.New("capability unavailable")
)
