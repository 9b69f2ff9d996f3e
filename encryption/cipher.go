// Package encryption provides AES-GCM authenticated encryption of short
// values such as database fields, producing a single self-contained text
// envelope per value.
//
// # Envelope format
//
// Every encrypted value is the standard base64 encoding of three
// concatenated byte segments:
//
//	IV (16 bytes) || TAG (16 bytes) || CIPHERTEXT (len(plaintext) bytes)
//
// The envelope carries no algorithm identifier; the [GCMEncrypter] that opens
// it must be constructed with the same key.  Decryption always treats every
// byte after the tag as ciphertext.
//
// # Quick start
//
//	salt, _ := random.String(random.PurposeSalt, random.EncodingBase64) // 32 chars
//	enc, err := encryption.NewEncrypter(salt) // AES-256-GCM
//
//	envelope, err := enc.EncryptString("hello")
//	plaintext, err := enc.DecryptString(envelope)
//
// # Security notes
//
//   - A fresh random 16-byte IV is drawn from the random package for every
//     Encrypt call; never reuse IVs.
//   - GCM verifies the tag before returning any plaintext; a tampered
//     envelope yields [ErrAuthenticationFailed], never corrupted output.
//   - Keys are cloned on ingestion so that external mutations cannot affect
//     in-use keys.
package encryption

import "fmt"

// Cipher names the encryption algorithm and operating mode.
// The string values are lowercase to match OpenSSL naming.
type Cipher string

const (
	// AES128GCM uses AES-128 in GCM mode.
	AES128GCM Cipher = "aes-128-gcm"
	// AES192GCM uses AES-192 in GCM mode.
	AES192GCM Cipher = "aes-192-gcm"
	// AES256GCM uses AES-256 in GCM mode.
	AES256GCM Cipher = "aes-256-gcm"
)

// cipherSpecs maps each cipher to its required key length in bytes.
var cipherSpecs = map[Cipher]int{
	AES128GCM: 16,
	AES192GCM: 24,
	AES256GCM: 32,
}

// Supported reports whether key and c form a valid combination.
// It returns false for unknown ciphers or mismatched key lengths.
func Supported(key []byte, c Cipher) bool {
	size, ok := cipherSpecs[c]
	return ok && len(key) == size
}

// KeySize returns the required key length in bytes for cipher c.
// It returns -1 for unsupported ciphers.
func KeySize(c Cipher) int {
	if size, ok := cipherSpecs[c]; ok {
		return size
	}
	return -1
}

// ValidateCipher returns a non-nil error if c is not a recognised cipher name.
func ValidateCipher(c Cipher) error {
	if _, ok := cipherSpecs[c]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedCipher, c)
	}
	return nil
}

// CipherForKey returns the cipher whose key size equals n bytes.
func CipherForKey(n int) (Cipher, error) {
	switch n {
	case 16:
		return AES128GCM, nil
	case 24:
		return AES192GCM, nil
	case 32:
		return AES256GCM, nil
	default:
		return "", fmt.Errorf("%w: got %d bytes, want 16, 24 or 32", ErrInvalidKeyLength, n)
	}
}
