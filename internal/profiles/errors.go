package profiles

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDateRange indicates an end date earlier than the start date.
	ErrInvalidDateRange = errors.New("end date is before start date")
)
