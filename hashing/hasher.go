package hashing

import "strings"

// DriverName identifies a password-hashing algorithm driver.
type DriverName string

const (
	// DriverArgon2i selects the Argon2i driver.
	DriverArgon2i DriverName = "argon2i"
	// DriverArgon2id selects the Argon2id driver (recommended for new systems).
	DriverArgon2id DriverName = "argon2id"
)

// Hasher is a memory-hard password-hashing driver.  [PasswordHasher] feeds
// it the keyed pre-digest, never the raw password.
//
// Implementations are safe for concurrent use.
type Hasher interface {
	// Make returns a self-describing record for password under a fresh
	// random salt.
	Make(password string) (string, error)

	// Check compares password with record in constant time.  A mismatch is
	// (false, nil); an unparsable or foreign record is (false, err).
	Check(password, record string) (bool, error)

	// NeedsRehash reports whether record's cost parameters differ from the
	// driver's.
	NeedsRehash(record string) (bool, error)

	// Info decodes record's parameters without verifying anything.
	Info(record string) (HashInfo, error)

	Driver() DriverName
}

// Digester is a deterministic one-way transform with base64 output.
// [KeyedHasher] and [Shake256Hasher] implement it.
type Digester interface {
	Hash(text string) string
}

// HashInfo describes a stored record.
type HashInfo struct {
	Driver DriverName

	// Params keys: "version" (int), "memory" (uint32, KiB), "time"
	// (uint32), "threads" (uint8) and "key_len" (uint32, bytes).
	Params map[string]any
}

// DetectDriver names the driver that produced record by its PHC prefix.
// ok is false for anything else.
func DetectDriver(record string) (name DriverName, ok bool) {
	switch {
	case strings.HasPrefix(record, "$argon2id$"):
		return DriverArgon2id, true
	case strings.HasPrefix(record, "$argon2i$"):
		return DriverArgon2i, true
	default:
		return "", false
	}
}
