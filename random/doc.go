// Package random generates cryptographically secure random byte sequences
// whose length is fixed by what the bytes are for.
//
// Two purposes are recognised:
//
//   - [PurposeIV]: 16 bytes, the initialisation vector used by the
//     encryption package for every AES-GCM envelope.
//   - [PurposeSalt]: 24 bytes, a per-application salt or pepper
//     (32 characters once base64-encoded).
//
// Any other purpose is rejected with [ErrInvalidPurpose]; a zero-length
// result is never returned.
//
// # Quick start
//
//	iv, err := random.Bytes(random.PurposeIV)
//	salt, err := random.String(random.PurposeSalt, random.EncodingBase64)
//
// All bytes come from crypto/rand.  Use [New] to read from a different
// [io.Reader], for example a deterministic source in tests.
package random
