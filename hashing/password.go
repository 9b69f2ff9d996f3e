package hashing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// PasswordOption configures a [PasswordHasher].
type PasswordOption func(*PasswordHasher)

// WithHasher replaces the default Argon2id driver.
// A nil hasher is ignored.
func WithHasher(h Hasher) PasswordOption {
	return func(p *PasswordHasher) {
		if h != nil {
			p.hasher = h
		}
	}
}

// WithLogger sets the logger that receives internal verification faults.
// Ordinary password mismatches are never logged.  A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) PasswordOption {
	return func(p *PasswordHasher) {
		if l != nil {
			p.log = l
		}
	}
}

// PasswordHasher hashes passwords for storage and verifies them later.
//
// Hashing is a two-stage chain: password+salt is digested by a [KeyedHasher]
// keyed with the pepper, and the fixed-length digest is passed to a
// memory-hard [Hasher] (Argon2id by default).  Records are only verifiable by
// a PasswordHasher built with the same pepper and salt.
//
// # Blocking
//
// [PasswordHasher.Hash] and [PasswordHasher.Verify] run the memory-hard
// function on a separate goroutine.  Cancelling ctx returns control to the
// caller immediately; the computation itself runs to completion in the
// background and its result is discarded.
//
// PasswordHasher is immutable after construction and safe for concurrent use.
type PasswordHasher struct {
	salt   string
	keyed  *KeyedHasher
	hasher Hasher
	log    logrus.FieldLogger
}

// NewPasswordHasher returns a PasswordHasher using pepper and salt.
// Both are required: [ErrMissingPepper] and [ErrMissingSalt] report an empty
// value.
func NewPasswordHasher(pepper, salt string, opts ...PasswordOption) (*PasswordHasher, error) {
	keyed, err := NewKeyedHasher(pepper)
	if err != nil {
		return nil, err
	}
	if salt == "" {
		return nil, ErrMissingSalt
	}

	p := &PasswordHasher{salt: salt, keyed: keyed}
	for _, o := range opts {
		o(p)
	}
	if p.hasher == nil {
		h, err := NewArgon2idHasher(DefaultArgon2Options())
		if err != nil {
			return nil, fmt.Errorf("hashing: failed to create default argon2id hasher: %w", err)
		}
		p.hasher = h
	}
	if p.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		p.log = l
	}
	return p, nil
}

// Driver returns the memory-hard driver that produces records.
func (p *PasswordHasher) Driver() DriverName { return p.hasher.Driver() }

// Hash returns a storable record for password.  Two calls with the same
// password return different records.
//
// If ctx is done before hashing finishes, Hash returns ctx.Err().
func (p *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	pre := p.prehash(password)
	record, err := await(ctx, func() (string, error) {
		return p.hasher.Make(pre)
	})
	if err != nil {
		return "", err
	}
	return record, nil
}

// Verify reports whether password matches record.
//
// Verify never returns an error: a malformed record, an algorithm mismatch,
// a cancelled ctx or a mismatch all yield false.  Internal faults are logged
// at warning level; a mismatch is not.
func (p *PasswordHasher) Verify(ctx context.Context, record, password string) bool {
	pre := p.prehash(password)
	ok, err := await(ctx, func() (bool, error) {
		return p.hasher.Check(pre, record)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			p.log.WithError(err).Debug("password verification abandoned")
			return false
		}
		p.log.WithError(err).
			WithField("driver", p.hasher.Driver()).
			Warn("password verification failed")
		return false
	}
	return ok
}

// NeedsRehash reports whether record was produced with parameters that
// differ from the configured driver's.
func (p *PasswordHasher) NeedsRehash(record string) (bool, error) {
	return p.hasher.NeedsRehash(record)
}

// prehash binds the password to the salt and pepper and normalises its length.
func (p *PasswordHasher) prehash(password string) string {
	return p.keyed.Hash(password + p.salt)
}

type result[T any] struct {
	val T
	err error
}

// await runs fn on its own goroutine and waits for it or for ctx.
// The channel is buffered so an abandoned fn can always finish.
// A panic in fn is returned as an error.
func await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	done := make(chan result[T], 1)
	go func() {
		var r result[T]
		defer func() {
			if v := recover(); v != nil {
				r.err = fmt.Errorf("hashing: recovered panic: %v", v)
			}
			done <- r
		}()
		r.val, r.err = fn()
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
