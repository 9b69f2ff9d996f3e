package random

import "errors"

// Sentinel errors returned by the generator.
var (
	// ErrInvalidPurpose is returned when a purpose other than [PurposeIV] or
	// [PurposeSalt] is requested.
	ErrInvalidPurpose = errors.New("random: invalid purpose")

	// ErrInvalidEncoding is returned when an unknown output encoding is requested.
	ErrInvalidEncoding = errors.New("random: invalid encoding")
)
