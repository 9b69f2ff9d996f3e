package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"

	"github.com/hasbyte1/go-secure-utils/random"
)

// Option is a functional option for configuring a [GCMEncrypter].
type Option func(*encrypterOptions)

type encrypterOptions struct {
	// ivSource feeds IV generation.  nil means crypto/rand.
	ivSource io.Reader
}

// WithIVSource replaces crypto/rand as the source of IV bytes.
// Intended for tests that need reproducible envelopes; never use a
// predictable source in production.
func WithIVSource(r io.Reader) Option {
	return func(o *encrypterOptions) {
		o.ivSource = r
	}
}

// GCMEncrypter provides AES-GCM authenticated encryption with a 16-byte IV
// and a 16-byte tag, packed into a single base64 envelope.
//
// # Thread safety
//
// GCMEncrypter is immutable after construction and safe for concurrent use.
type GCMEncrypter struct {
	key []byte
	c   Cipher
	ivs *random.Generator
}

// NewEncrypter constructs a [GCMEncrypter] that uses key's bytes directly as
// the AES key.  The cipher is chosen from the key length: 16, 24 or 32 bytes
// select AES-128, AES-192 or AES-256.
//
// A 24-byte salt from the random package, base64-encoded, is 32 characters
// long and therefore selects AES-256-GCM.
func NewEncrypter(key string, opts ...Option) (*GCMEncrypter, error) {
	if key == "" {
		return nil, ErrMissingKey
	}
	c, err := CipherForKey(len(key))
	if err != nil {
		return nil, err
	}
	return NewGCMEncrypter([]byte(key), c, opts...)
}

// NewGCMEncrypter constructs a [GCMEncrypter] for the given key and cipher.
//
// Key length must match the cipher's requirement (16, 24 or 32 bytes).
func NewGCMEncrypter(key []byte, c Cipher, opts ...Option) (*GCMEncrypter, error) {
	if len(key) == 0 {
		return nil, ErrMissingKey
	}
	if err := ValidateCipher(c); err != nil {
		return nil, err
	}
	if !Supported(key, c) {
		return nil, fmt.Errorf("%w: %q requires a %d-byte key, got %d bytes",
			ErrInvalidKeyLength, c, KeySize(c), len(key))
	}

	var o encrypterOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &GCMEncrypter{key: cloneBytes(key), c: c, ivs: random.New(o.ivSource)}, nil
}

// GetKey returns a copy of the encryption key.
func (e *GCMEncrypter) GetKey() []byte { return cloneBytes(e.key) }

// GetCipher returns the cipher identifier.
func (e *GCMEncrypter) GetCipher() Cipher { return e.c }

// Encrypt seals value under a fresh IV and returns base64(IV || TAG || CIPHERTEXT).
// Encrypting the same plaintext twice produces different envelopes.
func (e *GCMEncrypter) Encrypt(value []byte) ([]byte, error) {
	gcm, err := newGCM(e.key)
	if err != nil {
		return nil, err
	}

	iv, err := e.ivs.Bytes(random.PurposeIV)
	if err != nil {
		return nil, fmt.Errorf("encryption: failed to generate IV: %w", err)
	}

	// gcm.Seal appends the tag after the ciphertext: output = ciphertext || tag.
	sealed := gcm.Seal(nil, iv, value, nil)
	ciphertext := sealed[:len(sealed)-gcmTagSize]
	tag := sealed[len(sealed)-gcmTagSize:]

	return encodeEnvelope(iv, tag, ciphertext), nil
}

// EncryptString is a convenience wrapper that encrypts a UTF-8 string.
func (e *GCMEncrypter) EncryptString(value string) (string, error) {
	out, err := e.Encrypt([]byte(value))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Decrypt opens an envelope produced by [GCMEncrypter.Encrypt].
//
// Possible errors: [ErrMalformedInput], [ErrAuthenticationFailed].
func (e *GCMEncrypter) Decrypt(envelope []byte) ([]byte, error) {
	iv, tag, ciphertext, err := decodeEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	gcm, err := newGCM(e.key)
	if err != nil {
		return nil, err
	}

	// gcm.Open expects sealed = ciphertext || tag.
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// DecryptString is a convenience wrapper around [GCMEncrypter.Decrypt].
func (e *GCMEncrypter) DecryptString(envelope string) (string, error) {
	out, err := e.Decrypt([]byte(envelope))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// AppearsEncrypted returns true if envelope has the structural shape of an
// envelope produced by this encrypter.  It does not attempt decryption.
//
// Implements [EnvelopeInspector].
func (e *GCMEncrypter) AppearsEncrypted(envelope []byte) bool {
	_, _, _, err := decodeEnvelope(envelope)
	return err == nil
}

// newGCM builds an AES-GCM AEAD using a 16-byte nonce.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("encryption: failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, random.IVSize)
	if err != nil {
		return nil, fmt.Errorf("encryption: failed to initialise AES-GCM: %w", err)
	}
	return gcm, nil
}
