package hashing

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// KeyedDigestLen is the length of a [KeyedHasher] digest once base64-encoded.
const KeyedDigestLen = 44

// KeyedHasher computes HMAC-SHA256 digests keyed by a pepper.
//
// Digests are deterministic: identical pepper and text always produce the
// same output.  This allows exact-match lookups on hashed columns but also
// means equal inputs are visible as equal digests.  Use [PasswordHasher]
// when that is not acceptable.
//
// KeyedHasher is immutable after construction and safe for concurrent use.
type KeyedHasher struct {
	pepper []byte
}

// NewKeyedHasher returns a KeyedHasher keyed by pepper.
// It returns [ErrMissingPepper] if pepper is empty.
func NewKeyedHasher(pepper string) (*KeyedHasher, error) {
	if pepper == "" {
		return nil, ErrMissingPepper
	}
	return &KeyedHasher{pepper: []byte(pepper)}, nil
}

// Hash returns the standard base64 encoding of HMAC-SHA256(pepper, text).
// The result is always [KeyedDigestLen] characters.
func (h *KeyedHasher) Hash(text string) string {
	return base64.StdEncoding.EncodeToString(h.sum(text))
}

// Equal reports whether digest is the digest of text, comparing in
// constant time.
func (h *KeyedHasher) Equal(text, digest string) bool {
	want, err := base64.StdEncoding.DecodeString(digest)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(h.sum(text), want) == 1
}

func (h *KeyedHasher) sum(text string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(text))
	return mac.Sum(nil)
}
