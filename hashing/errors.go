package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	_, err := hashing.NewPasswordHasher("", salt)
//	if errors.Is(err, hashing.ErrMissingPepper) {
//	    // configuration error
//	}
var (
	// ErrMissingPepper is returned when a constructor is given an empty pepper.
	ErrMissingPepper = errors.New("hashing: pepper must not be empty")

	// ErrMissingSalt is returned when [NewPasswordHasher] is given an empty salt.
	ErrMissingSalt = errors.New("hashing: salt must not be empty")

	// ErrInvalidHash is returned when a hash string cannot be parsed because
	// it has an unrecognised format, missing fields, invalid encoding, or
	// out-of-range parameters.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption is returned when a constructor is called with a
	// parameter value that falls outside the allowed range.
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrAlgorithmMismatch is returned by a [Hasher]'s Check, NeedsRehash or
	// Info method when the hash string was produced by a different algorithm.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")
)
