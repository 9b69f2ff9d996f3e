package encryption

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/hasbyte1/go-secure-utils/random"
)

// GenerateKey returns KeySize(c) random bytes for [NewGCMEncrypter].
func GenerateKey(c Cipher) ([]byte, error) {
	n := KeySize(c)
	if n < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCipher, c)
	}
	key := make([]byte, n)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("encryption: reading random key: %w", err)
	}
	return key, nil
}

// GenerateSalt returns a fresh base64 salt for [NewEncrypter].  It is
// 32 characters long, so the resulting envelope uses AES-256-GCM.
//
//	salt, _ := encryption.GenerateSalt()
//	enc, _ := encryption.NewEncrypter(salt)
func GenerateSalt() (string, error) {
	return random.String(random.PurposeSalt, random.EncodingBase64)
}

// EncodeKey renders raw key bytes as standard base64 for config files and
// environment variables.
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// DecodeKey reverses [EncodeKey].  URL-safe and unpadded input is accepted.
//
// [NewEncrypter] uses its argument's bytes as the key without decoding;
// call DecodeKey first if the stored string is base64 of the real key.
func DecodeKey(encoded string) ([]byte, error) {
	key, err := base64Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("encryption: decoding key: %w", err)
	}
	return key, nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
