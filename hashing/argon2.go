package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Recommended Argon2 parameters, above the OWASP minimums for Argon2id.
const (
	DefaultArgon2Memory  uint32 = 64 * 1024 // KiB
	DefaultArgon2Time    uint32 = 3
	DefaultArgon2Threads uint8  = 2
	DefaultArgon2KeyLen  uint32 = 32
	DefaultArgon2SaltLen uint32 = 16
)

// Upper bounds on Argon2 parameters.  Records and options beyond them are
// rejected, which caps the memory and time a single Check can consume.
const (
	MaxArgon2Memory  uint32 = 2 * 1024 * 1024 // KiB (2 GiB, RFC 9106 first choice)
	MaxArgon2Time    uint32 = 16
	MaxArgon2KeyLen  uint32 = 1024
	MaxArgon2SaltLen uint32 = 1024
)

const (
	argon2Version = argon2.Version // 19

	minArgon2KeyLen  = 4
	minArgon2SaltLen = 8
)

// Argon2Options are the cost and size parameters of an Argon2 driver.  They
// are written into every record, so changing them never breaks verification
// of older records; use NeedsRehash to find those.
type Argon2Options struct {
	Memory  uint32 // KiB, at least 8 per thread, at most MaxArgon2Memory
	Time    uint32 // passes over memory, 1 to MaxArgon2Time
	Threads uint8  // lanes, at least 1
	KeyLen  uint32 // derived key bytes, 4 to MaxArgon2KeyLen
	SaltLen uint32 // random salt bytes, 8 to MaxArgon2SaltLen
}

// DefaultArgon2Options returns Argon2Options with the recommended defaults.
func DefaultArgon2Options() Argon2Options {
	return Argon2Options{
		Memory:  DefaultArgon2Memory,
		Time:    DefaultArgon2Time,
		Threads: DefaultArgon2Threads,
		KeyLen:  DefaultArgon2KeyLen,
		SaltLen: DefaultArgon2SaltLen,
	}
}

// Validate reports whether opts are usable by the Argon2 drivers.
func (opts Argon2Options) Validate() error {
	if opts.Time < 1 || opts.Time > MaxArgon2Time {
		return fmt.Errorf("%w: argon2 time must be in [1, %d], got %d", ErrInvalidOption, MaxArgon2Time, opts.Time)
	}
	if opts.Threads < 1 {
		return fmt.Errorf("%w: argon2 threads must be ≥ 1, got %d", ErrInvalidOption, opts.Threads)
	}
	if opts.Memory < 8*uint32(opts.Threads) {
		return fmt.Errorf("%w: argon2 memory (%d KiB) must be ≥ 8×threads (%d KiB)",
			ErrInvalidOption, opts.Memory, 8*uint32(opts.Threads))
	}
	if opts.Memory > MaxArgon2Memory {
		return fmt.Errorf("%w: argon2 memory must be ≤ %d KiB, got %d", ErrInvalidOption, MaxArgon2Memory, opts.Memory)
	}
	if opts.KeyLen < minArgon2KeyLen || opts.KeyLen > MaxArgon2KeyLen {
		return fmt.Errorf("%w: argon2 key_len must be in [%d, %d], got %d",
			ErrInvalidOption, minArgon2KeyLen, MaxArgon2KeyLen, opts.KeyLen)
	}
	if opts.SaltLen < minArgon2SaltLen || opts.SaltLen > MaxArgon2SaltLen {
		return fmt.Errorf("%w: argon2 salt_len must be in [%d, %d], got %d",
			ErrInvalidOption, minArgon2SaltLen, MaxArgon2SaltLen, opts.SaltLen)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// PHC string format
// ──────────────────────────────────────────────────────────────────────────────

// phcHash holds parameters and raw values decoded from a PHC hash string.
type phcHash struct {
	variant DriverName
	version uint32
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

// String serialises h in PHC String Format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
//
// The base64 encoding uses the standard alphabet without padding, the
// convention of the Argon2 reference implementation.
func (h *phcHash) String() string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		h.variant, h.version, h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(h.salt),
		base64.RawStdEncoding.EncodeToString(h.key),
	)
}

// keyLen is the derived key length recorded in the hash.
func (h *phcHash) keyLen() uint32 { return uint32(len(h.key)) }

// parsePHC parses an Argon2 PHC hash string.  Parameters are checked against
// the same bounds as [Argon2Options.Validate]: a hostile record cannot crash
// the argon2 package or verify with an empty key, and its cost is capped.
func parsePHC(encoded string) (*phcHash, error) {
	// The leading "$" produces an empty first element.
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 5-segment PHC string, got %d segments",
			ErrInvalidHash, len(parts)-1)
	}

	h := &phcHash{}
	switch DriverName(parts[1]) {
	case DriverArgon2i, DriverArgon2id:
		h.variant = DriverName(parts[1])
	default:
		return nil, fmt.Errorf("%w: unknown argon2 variant %q", ErrInvalidHash, parts[1])
	}

	version, err := parseKV(parts[2], "v")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if version != argon2Version {
		return nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrInvalidHash, version)
	}
	h.version = uint32(version)

	kvs, err := parseParams(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	memory, ok1 := kvs["m"]
	time, ok2 := kvs["t"]
	threads, ok3 := kvs["p"]
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: missing m/t/p in parameter segment %q", ErrInvalidHash, parts[3])
	}
	if memory > 1<<32-1 || time > 1<<32-1 || threads > 255 {
		return nil, fmt.Errorf("%w: parameter out of range in %q", ErrInvalidHash, parts[3])
	}
	h.memory, h.time, h.threads = uint32(memory), uint32(time), uint8(threads)

	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64: %v", ErrInvalidHash, err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: invalid hash base64: %v", ErrInvalidHash, err)
	}

	opts := Argon2Options{
		Memory:  h.memory,
		Time:    h.time,
		Threads: h.threads,
		KeyLen:  h.keyLen(),
		SaltLen: uint32(len(h.salt)),
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return h, nil
}

// parseKV parses a "key=value" string and returns the uint64 value.
func parseKV(s, key string) (uint64, error) {
	prefix := key + "="
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("expected %q prefix in %q", prefix, s)
	}
	return strconv.ParseUint(s[len(prefix):], 10, 64)
}

// parseParams splits "m=65536,t=3,p=2" into a map.
func parseParams(s string) (map[string]uint64, error) {
	out := make(map[string]uint64)
	for _, kv := range strings.Split(s, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed param %q", kv)
		}
		v, err := strconv.ParseUint(kv[eq+1:], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value in %q: %v", kv, err)
		}
		out[kv[:eq]] = v
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Shared driver
// ──────────────────────────────────────────────────────────────────────────────

// argon2Driver implements [Hasher] for one Argon2 variant.
type argon2Driver struct {
	variant DriverName
	opts    Argon2Options
}

// derive runs the variant's key derivation function.
func (d *argon2Driver) derive(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	if d.variant == DriverArgon2i {
		return argon2.Key(password, salt, time, memory, threads, keyLen)
	}
	return argon2.IDKey(password, salt, time, memory, threads, keyLen)
}

// parse decodes hash and rejects records produced by the other variant.
func (d *argon2Driver) parse(hash string) (*phcHash, error) {
	p, err := parsePHC(hash)
	if err != nil {
		return nil, err
	}
	if p.variant != d.variant {
		return nil, fmt.Errorf("%w: hash is %s, not %s", ErrAlgorithmMismatch, p.variant, d.variant)
	}
	return p, nil
}

// Driver returns the Argon2 variant implemented by the hasher.
func (d *argon2Driver) Driver() DriverName { return d.variant }

// Options returns the current Argon2 parameter set.
func (d *argon2Driver) Options() Argon2Options { return d.opts }

// Make hashes password and returns a PHC-formatted string.
// A fresh random salt of the configured length is generated for each call.
func (d *argon2Driver) Make(password string) (string, error) {
	salt := make([]byte, d.opts.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("hashing: %s: failed to generate salt: %w", d.variant, err)
	}
	h := &phcHash{
		variant: d.variant,
		version: argon2Version,
		memory:  d.opts.Memory,
		time:    d.opts.Time,
		threads: d.opts.Threads,
		salt:    salt,
		key:     d.derive([]byte(password), salt, d.opts.Time, d.opts.Memory, d.opts.Threads, d.opts.KeyLen),
	}
	return h.String(), nil
}

// Check verifies that password matches the PHC hash.  The parameters are
// read from the hash string itself, so verification keeps working after the
// hasher's options change.
func (d *argon2Driver) Check(password, hash string) (bool, error) {
	p, err := d.parse(hash)
	if err != nil {
		return false, err
	}
	computed := d.derive([]byte(password), p.salt, p.time, p.memory, p.threads, p.keyLen())
	return subtle.ConstantTimeCompare(computed, p.key) == 1, nil
}

// NeedsRehash returns true if any parameter stored in hash differs from the
// hasher's current configuration.
func (d *argon2Driver) NeedsRehash(hash string) (bool, error) {
	p, err := d.parse(hash)
	if err != nil {
		return false, err
	}
	return p.memory != d.opts.Memory ||
		p.time != d.opts.Time ||
		p.threads != d.opts.Threads ||
		p.keyLen() != d.opts.KeyLen, nil
}

// Info parses the PHC string and returns the encoded parameters.
func (d *argon2Driver) Info(hash string) (HashInfo, error) {
	p, err := d.parse(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: p.variant,
		Params: map[string]any{
			"version": int(p.version),
			"memory":  p.memory,
			"time":    p.time,
			"threads": p.threads,
			"key_len": p.keyLen(),
		},
	}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Variants
// ──────────────────────────────────────────────────────────────────────────────

// Argon2idHasher hashes passwords using the Argon2id algorithm, the variant
// recommended by RFC 9106 and OWASP.  It is the default driver of
// [PasswordHasher].
//
// Output format: $argon2id$v=19$m=…,t=…,p=…$<salt>$<hash>.
//
// Argon2idHasher is immutable after construction and safe for concurrent use.
type Argon2idHasher struct {
	argon2Driver
}

// NewArgon2idHasher constructs an Argon2idHasher with the given options.
// Use [DefaultArgon2Options] for recommended defaults.
func NewArgon2idHasher(opts Argon2Options) (*Argon2idHasher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Argon2idHasher{argon2Driver{variant: DriverArgon2id, opts: opts}}, nil
}

// Argon2iHasher hashes passwords using the Argon2i algorithm
// (data-independent memory access).  Prefer [Argon2idHasher] for new systems.
//
// Output format: $argon2i$v=19$m=…,t=…,p=…$<salt>$<hash>.
type Argon2iHasher struct {
	argon2Driver
}

// NewArgon2iHasher constructs an Argon2iHasher with the given options.
func NewArgon2iHasher(opts Argon2Options) (*Argon2iHasher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Argon2iHasher{argon2Driver{variant: DriverArgon2i, opts: opts}}, nil
}
