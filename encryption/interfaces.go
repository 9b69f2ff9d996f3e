package encryption

// Encrypter is the interface satisfied by encryption backends in this
// package.  Consumers should depend on it rather than on [GCMEncrypter].
type Encrypter interface {
	// Encrypt encrypts arbitrary bytes and returns the base64 envelope.
	Encrypt(value []byte) ([]byte, error)

	// EncryptString is a convenience wrapper around Encrypt for string values.
	EncryptString(value string) (string, error)

	// Decrypt opens an envelope previously produced by Encrypt and returns
	// the original plaintext bytes.
	Decrypt(envelope []byte) ([]byte, error)

	// DecryptString is a convenience wrapper around Decrypt for string values.
	DecryptString(envelope string) (string, error)

	// GetKey returns a copy of the encryption key.
	GetKey() []byte

	// GetCipher returns the cipher identifier used by this encrypter.
	GetCipher() Cipher
}

// EnvelopeInspector is an optional interface for backends that can cheaply
// detect whether a value looks like one of their envelopes.
type EnvelopeInspector interface {
	// AppearsEncrypted returns true if envelope decodes and is long enough to
	// hold an IV and a tag.  It does not verify the tag.
	AppearsEncrypted(envelope []byte) bool
}
