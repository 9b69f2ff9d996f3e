package hashing

import (
	"encoding/base64"

	"golang.org/x/crypto/sha3"
)

// shake256OutputLen is the number of bytes read from the SHAKE256 sponge.
const shake256OutputLen = 32

// Shake256Hasher computes unkeyed SHAKE256 digests with a 32-byte output,
// base64-encoded to 44 characters.
//
// Without a key anyone can recompute the digest of a guessed input; prefer
// [KeyedHasher] for anything derived from user secrets.
type Shake256Hasher struct{}

// NewShake256Hasher returns a Shake256Hasher.
func NewShake256Hasher() *Shake256Hasher { return &Shake256Hasher{} }

// Hash returns the standard base64 encoding of SHAKE256(text) truncated to
// 32 bytes.
func (*Shake256Hasher) Hash(text string) string {
	out := make([]byte, shake256OutputLen)
	sha3.ShakeSum256(out, []byte(text))
	return base64.StdEncoding.EncodeToString(out)
}
