// Package hashing provides one-way transforms of secrets: deterministic
// digests for lookups and salted, memory-hard password hashes for storage.
//
// # Components
//
//   - [KeyedHasher]: HMAC-SHA256 keyed by an application pepper, base64
//     output (44 characters).  Deterministic: the same pepper and text always
//     give the same digest, which makes it suitable for exact-match lookups.
//   - [Shake256Hasher]: unkeyed SHAKE256 with a 32-byte output, base64.
//   - [Argon2idHasher], [Argon2iHasher]: memory-hard password hashing
//     drivers implementing [Hasher] and producing PHC strings.
//   - [PasswordHasher]: chains the two, so password+salt is pre-digested by a
//     [KeyedHasher] keyed with the pepper, and the digest is fed to an Argon2
//     driver.  A leaked record alone cannot be attacked offline without the
//     pepper.
//
// Use [PasswordHasher] whenever the output must not be deterministic.
//
// # Quick start
//
//	ph, err := hashing.NewPasswordHasher(pepper, salt)
//	if err != nil { log.Fatal(err) }
//
//	record, err := ph.Hash(ctx, "my-secret-password")
//	ok := ph.Verify(ctx, record, "my-secret-password") // true
//
// # Security defaults
//
//   - Argon2id: m=64 MiB, t=3 iterations, p=2 threads, 32-byte key.
//     Exceeds OWASP ASVS Level 2 (m≥19 MiB, t≥2, p≥1).
//   - Argon2i:  same defaults as Argon2id (use Argon2id for new systems).
//
// # Argon2 hash format
//
// Argon2 hashes are stored in the PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-hash>
//
// All parameters are self-contained in the string, so no external configuration
// is needed to verify a previously produced hash.
package hashing
