package generations

import "errors"

var (
	// ErrNotFound indicates the generation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the caller does not own the generation.
	ErrForbidden = errors.New("forbidden")
)
