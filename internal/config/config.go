// Package config loads cryptkit settings from an optional TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the TOML file, CRYPTKIT_*
// environment variables.  Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hasbyte1/go-secure-utils/hashing"
)

// EnvPrefix prefixes every environment variable read by [Config.ApplyEnv].
const EnvPrefix = "CRYPTKIT_"

// ErrUnknownKey is returned when the TOML file contains keys that no field
// consumes, which usually means a typo.
var ErrUnknownKey = errors.New("config: unknown key")

// Config is the cryptkit configuration.
type Config struct {
	// Pepper keys HMAC digests and the password pre-hash.
	Pepper string `toml:"pepper"`
	// Salt is the AES key and is mixed into the password pre-hash.
	Salt string `toml:"salt"`
	// Argon2 tunes the memory-hard stage of password hashing.
	Argon2 Argon2 `toml:"argon2"`
}

// Argon2 holds the password-hashing parameters.
type Argon2 struct {
	Variant string `toml:"variant"`
	Memory  uint32 `toml:"memory"`
	Time    uint32 `toml:"time"`
	Threads uint8  `toml:"threads"`
	KeyLen  uint32 `toml:"key_len"`
	SaltLen uint32 `toml:"salt_len"`
}

// Default returns a Config with no secrets and the recommended Argon2id
// parameters.
func Default() Config {
	opts := hashing.DefaultArgon2Options()
	return Config{
		Argon2: Argon2{
			Variant: string(hashing.DriverArgon2id),
			Memory:  opts.Memory,
			Time:    opts.Time,
			Threads: opts.Threads,
			KeyLen:  opts.KeyLen,
			SaltLen: opts.SaltLen,
		},
	}
}

// Load returns the defaults overlaid by the TOML file at path (skipped when
// path is empty) and by the process environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path into c.  Keys absent from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overlays CRYPTKIT_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "PEPPER"); ok {
		c.Pepper = v
	}
	if v, ok := lookup(EnvPrefix + "SALT"); ok {
		c.Salt = v
	}
	if v, ok := lookup(EnvPrefix + "ARGON2_VARIANT"); ok {
		c.Argon2.Variant = v
	}

	uints := []struct {
		name string
		bits int
		set  func(uint64)
	}{
		{"ARGON2_MEMORY", 32, func(n uint64) { c.Argon2.Memory = uint32(n) }},
		{"ARGON2_TIME", 32, func(n uint64) { c.Argon2.Time = uint32(n) }},
		{"ARGON2_THREADS", 8, func(n uint64) { c.Argon2.Threads = uint8(n) }},
		{"ARGON2_KEY_LEN", 32, func(n uint64) { c.Argon2.KeyLen = uint32(n) }},
		{"ARGON2_SALT_LEN", 32, func(n uint64) { c.Argon2.SaltLen = uint32(n) }},
	}
	for _, u := range uints {
		v, ok := lookup(EnvPrefix + u.name)
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(v, 10, u.bits)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, u.name, err)
		}
		u.set(n)
	}
	return nil
}

// Argon2Options converts the Argon2 section to hashing options.
func (c Config) Argon2Options() hashing.Argon2Options {
	return hashing.Argon2Options{
		Memory:  c.Argon2.Memory,
		Time:    c.Argon2.Time,
		Threads: c.Argon2.Threads,
		KeyLen:  c.Argon2.KeyLen,
		SaltLen: c.Argon2.SaltLen,
	}
}

// PasswordDriver builds the Argon2 driver named by Argon2.Variant.
func (c Config) PasswordDriver() (hashing.Hasher, error) {
	opts := c.Argon2Options()
	switch hashing.DriverName(c.Argon2.Variant) {
	case hashing.DriverArgon2id, "":
		h, err := hashing.NewArgon2idHasher(opts)
		if err != nil {
			return nil, err
		}
		return h, nil
	case hashing.DriverArgon2i:
		h, err := hashing.NewArgon2iHasher(opts)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, fmt.Errorf("%w: unknown argon2 variant %q", hashing.ErrInvalidOption, c.Argon2.Variant)
	}
}
