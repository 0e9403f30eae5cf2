package validator

import "errors"

// Common validation errors that can be used across the application.
var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidDate is returned when a date string does not match DateLayout.
	ErrInvalidDate = errors.New("invalid date")
)
