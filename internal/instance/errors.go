package instance

import "errors"

var (
	// ErrMalformed is returned when an OR-Library file does not follow the expected layout.
	ErrMalformed = errors.New("malformed instance file")
	// ErrInvalidInstance is returned when a decoded instance has missing or out-of-range fields.
	ErrInvalidInstance = errors.New("invalid instance")
)
