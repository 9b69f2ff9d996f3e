package hashing_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hasbyte1/go-secure-utils/hashing"
)

// fastArgon2Opts returns minimal Argon2 parameters for unit tests.
// These are intentionally weak; do not use in production.
func fastArgon2Opts() hashing.Argon2Options {
	return hashing.Argon2Options{
		Memory:  8 * 2, // 8 × Threads minimum
		Time:    1,
		Threads: 2,
		KeyLen:  16,
		SaltLen: 8,
	}
}

// argon2Variant builds one driver so the suite runs against both.
type argon2Variant struct {
	driver hashing.DriverName
	prefix string
	other  hashing.DriverName
	build  func(hashing.Argon2Options) (hashing.Hasher, error)
}

var argon2Variants = []argon2Variant{
	{
		driver: hashing.DriverArgon2id,
		prefix: "$argon2id$v=19$",
		other:  hashing.DriverArgon2i,
		build: func(o hashing.Argon2Options) (hashing.Hasher, error) {
			h, err := hashing.NewArgon2idHasher(o)
			if err != nil {
				return nil, err
			}
			return h, nil
		},
	},
	{
		driver: hashing.DriverArgon2i,
		prefix: "$argon2i$v=19$",
		other:  hashing.DriverArgon2id,
		build: func(o hashing.Argon2Options) (hashing.Hasher, error) {
			h, err := hashing.NewArgon2iHasher(o)
			if err != nil {
				return nil, err
			}
			return h, nil
		},
	},
}

func variantFor(t *testing.T, name hashing.DriverName) argon2Variant {
	t.Helper()
	for _, v := range argon2Variants {
		if v.driver == name {
			return v
		}
	}
	t.Fatalf("no variant %q", name)
	return argon2Variant{}
}

func (v argon2Variant) mustBuild(t *testing.T, opts hashing.Argon2Options) hashing.Hasher {
	t.Helper()
	h, err := v.build(opts)
	if err != nil {
		t.Fatalf("new %s hasher: %v", v.driver, err)
	}
	return h
}

// forEachVariant runs fn as a subtest per Argon2 variant.
func forEachVariant(t *testing.T, fn func(t *testing.T, v argon2Variant, h hashing.Hasher)) {
	for _, v := range argon2Variants {
		t.Run(string(v.driver), func(t *testing.T) {
			fn(t, v, v.mustBuild(t, fastArgon2Opts()))
		})
	}
}

func newTestArgon2idHasher(t *testing.T) *hashing.Argon2idHasher {
	t.Helper()
	h, err := hashing.NewArgon2idHasher(fastArgon2Opts())
	if err != nil {
		t.Fatalf("NewArgon2idHasher: %v", err)
	}
	return h
}

func newTestArgon2iHasher(t *testing.T) *hashing.Argon2iHasher {
	t.Helper()
	h, err := hashing.NewArgon2iHasher(fastArgon2Opts())
	if err != nil {
		t.Fatalf("NewArgon2iHasher: %v", err)
	}
	return h
}

func mustMake(t *testing.T, h hashing.Hasher, password string) string {
	t.Helper()
	hash, err := h.Make(password)
	if err != nil {
		t.Fatalf("Make(%q): %v", password, err)
	}
	return hash
}

func TestArgon2Options_Validate(t *testing.T) {
	tests := []struct {
		name string
		opts hashing.Argon2Options
		ok   bool
	}{
		{"defaults", hashing.DefaultArgon2Options(), true},
		{"fast", fastArgon2Opts(), true},
		{"time=0", hashing.Argon2Options{Memory: 64, Time: 0, Threads: 1, KeyLen: 16, SaltLen: 8}, false},
		{"threads=0", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 0, KeyLen: 16, SaltLen: 8}, false},
		{"memory below 8*threads", hashing.Argon2Options{Memory: 15, Time: 1, Threads: 2, KeyLen: 16, SaltLen: 8}, false},
		{"memory exactly 8*threads", hashing.Argon2Options{Memory: 16, Time: 1, Threads: 2, KeyLen: 16, SaltLen: 8}, true},
		{"key_len<4", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 1, KeyLen: 3, SaltLen: 8}, false},
		{"salt_len<8", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 1, KeyLen: 16, SaltLen: 7}, false},
		{"memory at max", hashing.Argon2Options{Memory: hashing.MaxArgon2Memory, Time: 1, Threads: 1, KeyLen: 16, SaltLen: 8}, true},
		{"memory above max", hashing.Argon2Options{Memory: hashing.MaxArgon2Memory + 1, Time: 1, Threads: 1, KeyLen: 16, SaltLen: 8}, false},
		{"time above max", hashing.Argon2Options{Memory: 64, Time: hashing.MaxArgon2Time + 1, Threads: 1, KeyLen: 16, SaltLen: 8}, false},
		{"key_len above max", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 1, KeyLen: hashing.MaxArgon2KeyLen + 1, SaltLen: 8}, false},
		{"salt_len above max", hashing.Argon2Options{Memory: 64, Time: 1, Threads: 1, KeyLen: 16, SaltLen: hashing.MaxArgon2SaltLen + 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, hashing.ErrInvalidOption) {
				t.Fatalf("Validate = %v, want ErrInvalidOption", err)
			}
			for _, v := range argon2Variants {
				if _, err := v.build(tt.opts); (err == nil) != tt.ok {
					t.Errorf("%s constructor err = %v, want ok=%v", v.driver, err, tt.ok)
				}
			}
		})
	}
}

func TestDefaultArgon2Options(t *testing.T) {
	want := hashing.Argon2Options{
		Memory:  hashing.DefaultArgon2Memory,
		Time:    hashing.DefaultArgon2Time,
		Threads: hashing.DefaultArgon2Threads,
		KeyLen:  hashing.DefaultArgon2KeyLen,
		SaltLen: hashing.DefaultArgon2SaltLen,
	}
	if got := hashing.DefaultArgon2Options(); got != want {
		t.Errorf("DefaultArgon2Options() = %+v, want %+v", got, want)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Make / Check
// ──────────────────────────────────────────────────────────────────────────────

func TestArgon2_Make(t *testing.T) {
	forEachVariant(t, func(t *testing.T, v argon2Variant, h hashing.Hasher) {
		if h.Driver() != v.driver {
			t.Errorf("Driver() = %q, want %q", h.Driver(), v.driver)
		}

		a := mustMake(t, h, "same")
		b := mustMake(t, h, "same")
		if !strings.HasPrefix(a, v.prefix+"m=16,t=1,p=2$") {
			t.Errorf("hash = %q, want prefix %q", a, v.prefix)
		}
		if a == b {
			t.Error("two Make calls must use different salts")
		}
		if got, ok := hashing.DetectDriver(a); !ok || got != v.driver {
			t.Errorf("DetectDriver = (%q, %v)", got, ok)
		}
	})
}

func TestArgon2_Check(t *testing.T) {
	forEachVariant(t, func(t *testing.T, v argon2Variant, h hashing.Hasher) {
		tests := []struct {
			name, stored, given string
			want                bool
		}{
			{"match", "secure-pass", "secure-pass", true},
			{"mismatch", "correct", "incorrect", false},
			{"case", "Secret", "secret", false},
			{"empty", "", "", true},
			{"empty vs non-empty", "", " ", false},
			{"unicode", "pässwörd 🔑", "pässwörd 🔑", true},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				hash := mustMake(t, h, tt.stored)
				ok, err := h.Check(tt.given, hash)
				if err != nil {
					t.Fatalf("Check: %v", err)
				}
				if ok != tt.want {
					t.Errorf("Check = %v, want %v", ok, tt.want)
				}
			})
		}
	})
}

func TestArgon2_Check_OtherVariant(t *testing.T) {
	forEachVariant(t, func(t *testing.T, v argon2Variant, h hashing.Hasher) {
		other := variantFor(t, v.other).mustBuild(t, fastArgon2Opts())
		hash := mustMake(t, other, "pw")

		ok, err := h.Check("pw", hash)
		if ok || !errors.Is(err, hashing.ErrAlgorithmMismatch) {
			t.Errorf("Check = (%v, %v), want ErrAlgorithmMismatch", ok, err)
		}
		if _, err := h.Info(hash); !errors.Is(err, hashing.ErrAlgorithmMismatch) {
			t.Errorf("Info err = %v, want ErrAlgorithmMismatch", err)
		}
	})
}

func TestArgon2_Check_NotAHash(t *testing.T) {
	forEachVariant(t, func(t *testing.T, _ argon2Variant, h hashing.Hasher) {
		for _, s := range []string{"", "not-a-hash", "$2b$12$abcdefghijklmnopqrstuv"} {
			if _, err := h.Check("pw", s); !errors.Is(err, hashing.ErrInvalidHash) {
				t.Errorf("Check(%q) err = %v, want ErrInvalidHash", s, err)
			}
		}
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// NeedsRehash / Info
// ──────────────────────────────────────────────────────────────────────────────

func TestArgon2_NeedsRehash(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*hashing.Argon2Options)
		want   bool
	}{
		{"same params", func(*hashing.Argon2Options) {}, false},
		{"memory", func(o *hashing.Argon2Options) { o.Memory *= 2 }, true},
		{"time", func(o *hashing.Argon2Options) { o.Time++ }, true},
		{"threads", func(o *hashing.Argon2Options) { o.Threads = 1 }, true},
		{"key_len", func(o *hashing.Argon2Options) { o.KeyLen = 32 }, true},
		// The salt length is not part of the rehash decision.
		{"salt_len", func(o *hashing.Argon2Options) { o.SaltLen = 16 }, false},
	}
	forEachVariant(t, func(t *testing.T, v argon2Variant, h hashing.Hasher) {
		hash := mustMake(t, h, "pw")
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				opts := fastArgon2Opts()
				tt.mutate(&opts)
				needs, err := v.mustBuild(t, opts).NeedsRehash(hash)
				if err != nil {
					t.Fatalf("NeedsRehash: %v", err)
				}
				if needs != tt.want {
					t.Errorf("NeedsRehash = %v, want %v", needs, tt.want)
				}
			})
		}
	})
}

func TestArgon2_Info(t *testing.T) {
	forEachVariant(t, func(t *testing.T, v argon2Variant, h hashing.Hasher) {
		info, err := h.Info(mustMake(t, h, "pw"))
		if err != nil {
			t.Fatalf("Info: %v", err)
		}
		if info.Driver != v.driver {
			t.Errorf("Driver = %q, want %q", info.Driver, v.driver)
		}
		opts := fastArgon2Opts()
		if got := info.Params["memory"].(uint32); got != opts.Memory {
			t.Errorf("memory = %d, want %d", got, opts.Memory)
		}
		if got := info.Params["time"].(uint32); got != opts.Time {
			t.Errorf("time = %d, want %d", got, opts.Time)
		}
		if got := info.Params["threads"].(uint8); got != opts.Threads {
			t.Errorf("threads = %d, want %d", got, opts.Threads)
		}
		if got := info.Params["key_len"].(uint32); got != opts.KeyLen {
			t.Errorf("key_len = %d, want %d", got, opts.KeyLen)
		}
	})
}

// A record made under old work factors still verifies after they are raised,
// and is flagged for rehash.
func TestArgon2_UpgradedOptionsStillVerify(t *testing.T) {
	forEachVariant(t, func(t *testing.T, v argon2Variant, old hashing.Hasher) {
		opts := fastArgon2Opts()
		opts.Memory *= 4
		opts.Time = 2
		upgraded := v.mustBuild(t, opts)

		hash := mustMake(t, old, "hello")
		if ok, err := upgraded.Check("hello", hash); err != nil || !ok {
			t.Fatalf("Check after upgrade: ok=%v err=%v", ok, err)
		}
		if needs, err := upgraded.NeedsRehash(hash); err != nil || !needs {
			t.Fatalf("NeedsRehash after upgrade: needs=%v err=%v", needs, err)
		}
	})
}

func TestDetectDriver_Unknown(t *testing.T) {
	for _, h := range []string{"some-random-string", "$2b$12$abcdefghijklmnopqrstuv", "$argon2d$v=19$", ""} {
		if _, ok := hashing.DetectDriver(h); ok {
			t.Errorf("expected ok=false for %q", h)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Hostile records
// ──────────────────────────────────────────────────────────────────────────────

// Records whose parameters would crash the argon2 package, demand unbounded
// memory or time, or carry an empty key are rejected before derivation.
func TestArgon2_Check_RejectsHostileRecords(t *testing.T) {
	const (
		salt = "c29tZXNhbHQ" // "somesalt", unpadded
		key  = "a2V5a2V5a2V5a2V5"
	)
	tests := []struct {
		name string
		tail string
	}{
		{"zero threads", "v=19$m=16,t=1,p=0$" + salt + "$" + key},
		{"zero time", "v=19$m=16,t=0,p=1$" + salt + "$" + key},
		{"memory below 8*threads", "v=19$m=1,t=1,p=1$" + salt + "$" + key},
		{"threads overflow", "v=19$m=4096,t=1,p=256$" + salt + "$" + key},
		{"memory too large", "v=19$m=4294967295,t=1,p=1$" + salt + "$" + key},
		{"memory just above cap", "v=19$m=2097153,t=1,p=1$" + salt + "$" + key},
		{"memory overflows uint32", "v=19$m=4294967296,t=1,p=1$" + salt + "$" + key},
		{"time too large", "v=19$m=8,t=100000000,p=1$" + salt + "$" + key},
		{"every cost at type max", "v=19$m=4294967295,t=4294967295,p=255$" + salt + "$" + key},
		{"empty key", "v=19$m=16,t=1,p=1$" + salt + "$"},
		{"short salt", "v=19$m=16,t=1,p=1$c2FsdA$" + key},
		{"unknown version", "v=16$m=16,t=1,p=1$" + salt + "$" + key},
		{"missing param", "v=19$m=16,t=1$" + salt + "$" + key},
		{"non-numeric param", "v=19$m=x,t=1,p=1$" + salt + "$" + key},
		{"bad salt base64", "v=19$m=16,t=1,p=1$!!!$" + key},
		{"too few segments", "v=19$m=16,t=1,p=1"},
	}
	forEachVariant(t, func(t *testing.T, v argon2Variant, h hashing.Hasher) {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				record := "$" + string(v.driver) + "$" + tt.tail
				ok, err := h.Check("pw", record)
				if !errors.Is(err, hashing.ErrInvalidHash) {
					t.Fatalf("Check(%q) err = %v, want ErrInvalidHash", record, err)
				}
				if ok {
					t.Fatal("hostile record must not verify")
				}
			})
		}
	})
}

func TestArgon2_Check_UnknownVariant(t *testing.T) {
	forEachVariant(t, func(t *testing.T, _ argon2Variant, h hashing.Hasher) {
		_, err := h.Check("pw", "$argon2d$v=19$m=16,t=1,p=1$c29tZXNhbHQ$a2V5a2V5a2V5a2V5")
		if !errors.Is(err, hashing.ErrInvalidHash) {
			t.Fatalf("err = %v, want ErrInvalidHash", err)
		}
	})
}
