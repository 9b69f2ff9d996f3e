package encryption

import "errors"

// Sentinel errors returned by encryption operations.
//
// Callers should use errors.Is for comparisons:
//
//	_, err := enc.Decrypt(envelope)
//	if errors.Is(err, encryption.ErrAuthenticationFailed) {
//	    // envelope was tampered with or sealed under another key
//	}
var (
	// ErrMissingKey is returned when a nil or zero-length key is provided.
	ErrMissingKey = errors.New("encryption: key must not be empty")

	// ErrInvalidKeyLength is returned when the provided key does not satisfy
	// the key-size requirement of the selected cipher.
	ErrInvalidKeyLength = errors.New("encryption: invalid key length for cipher")

	// ErrUnsupportedCipher is returned when an unrecognised cipher name is used.
	ErrUnsupportedCipher = errors.New("encryption: unsupported cipher")

	// ErrMalformedInput is returned when an envelope cannot be base64-decoded
	// or is too short to hold an IV and a tag.
	ErrMalformedInput = errors.New("encryption: malformed envelope")

	// ErrAuthenticationFailed is returned when the GCM tag does not verify.
	// Always treat this as a hard failure.
	ErrAuthenticationFailed = errors.New("encryption: authentication failed")
)
