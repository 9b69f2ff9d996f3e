package encryption

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/hasbyte1/go-secure-utils/random"
)

const (
	// gcmTagSize is the AES-GCM authentication tag length in bytes (128 bits).
	gcmTagSize = 16

	// envelopeHeaderSize is the fixed prefix length: IV followed by tag.
	envelopeHeaderSize = random.IVSize + gcmTagSize
)

// encodeEnvelope concatenates iv, tag and ciphertext and base64-encodes the result.
func encodeEnvelope(iv, tag, ciphertext []byte) []byte {
	raw := make([]byte, 0, len(iv)+len(tag)+len(ciphertext))
	raw = append(raw, iv...)
	raw = append(raw, tag...)
	raw = append(raw, ciphertext...)

	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out
}

// decodeEnvelope splits an envelope into its IV, tag and ciphertext.
// The ciphertext is everything after the tag and may be empty.
func decodeEnvelope(envelope []byte) (iv, tag, ciphertext []byte, err error) {
	s := strings.TrimSpace(string(envelope))
	if s == "" {
		return nil, nil, nil, fmt.Errorf("%w: empty input", ErrMalformedInput)
	}

	raw, err := base64Decode(s)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(raw) < envelopeHeaderSize {
		return nil, nil, nil, fmt.Errorf("%w: %d bytes, need at least %d",
			ErrMalformedInput, len(raw), envelopeHeaderSize)
	}

	iv = raw[:random.IVSize]
	tag = raw[random.IVSize:envelopeHeaderSize]
	ciphertext = raw[envelopeHeaderSize:]
	return iv, tag, ciphertext, nil
}

// base64Decodings are tried in order by base64Decode.  All are strict, so
// non-canonical trailing bits are rejected and each alphabet and padding
// form has exactly one spelling of a given byte string.
var base64Decodings = []*base64.Encoding{
	base64.StdEncoding.Strict(),
	base64.URLEncoding.Strict(),
	base64.RawStdEncoding.Strict(),
	base64.RawURLEncoding.Strict(),
}

// base64Decode decodes s with the first strict encoding that accepts it.
func base64Decode(s string) ([]byte, error) {
	var err error
	for _, enc := range base64Decodings {
		var b []byte
		if b, err = enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	return nil, err
}
