package random

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

// Purpose tags what the random bytes will be used for.  The purpose alone
// decides the output length.
type Purpose string

const (
	// PurposeIV requests an AES initialisation vector.
	PurposeIV Purpose = "iv"
	// PurposeSalt requests a per-application salt or pepper.
	PurposeSalt Purpose = "salt"
)

const (
	// IVSize is the length in bytes of a [PurposeIV] value.
	IVSize = 16
	// SaltSize is the length in bytes of a [PurposeSalt] value.
	SaltSize = 24
)

// Encoding selects the text representation returned by [String].
type Encoding string

const (
	// EncodingRaw returns the bytes unchanged, wrapped in a Go string.
	EncodingRaw Encoding = "raw"
	// EncodingBase64 returns padded standard base64.
	EncodingBase64 Encoding = "base64"
	// EncodingHex returns lowercase hexadecimal.
	EncodingHex Encoding = "hex"
)

// Size returns the number of bytes generated for p.
func Size(p Purpose) (int, error) {
	switch p {
	case PurposeIV:
		return IVSize, nil
	case PurposeSalt:
		return SaltSize, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPurpose, p)
	}
}

// Generator produces random bytes from an underlying reader.
//
// The zero value is not usable; construct with [New] or use the package-level
// functions, which read from crypto/rand.
//
// Generator holds no mutable state and is safe for concurrent use provided
// the reader is.
type Generator struct {
	src io.Reader
}

// New returns a Generator reading from src.
// A nil src selects crypto/rand.Reader.
func New(src io.Reader) *Generator {
	if src == nil {
		src = rand.Reader
	}
	return &Generator{src: src}
}

// Bytes returns Size(p) fresh random bytes.
func (g *Generator) Bytes(p Purpose) ([]byte, error) {
	n, err := Size(p)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(g.src, b); err != nil {
		return nil, fmt.Errorf("random: failed to read %d bytes for %s: %w", n, p, err)
	}
	return b, nil
}

// String returns Size(p) fresh random bytes in the requested encoding.
func (g *Generator) String(p Purpose, enc Encoding) (string, error) {
	switch enc {
	case EncodingRaw, EncodingBase64, EncodingHex:
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEncoding, enc)
	}
	b, err := g.Bytes(p)
	if err != nil {
		return "", err
	}
	switch enc {
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(b), nil
	case EncodingHex:
		return hex.EncodeToString(b), nil
	default:
		return string(b), nil
	}
}

var defaultGenerator = New(rand.Reader)

// Bytes returns Size(p) random bytes from crypto/rand.
func Bytes(p Purpose) ([]byte, error) { return defaultGenerator.Bytes(p) }

// String returns Size(p) random bytes from crypto/rand in the requested encoding.
func String(p Purpose, enc Encoding) (string, error) { return defaultGenerator.String(p, enc) }
