package main

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hasbyte1/go-secure-utils/encryption"
	"github.com/hasbyte1/go-secure-utils/hashing"
	"github.com/hasbyte1/go-secure-utils/random"
)

// errMismatch makes `cryptkit verify` exit non-zero without printing an error.
var errMismatch = errors.New("password does not match")

func (a *app) newRandomCmd() *cobra.Command {
	var (
		purpose  random.Purpose
		encoding random.Encoding
	)
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Generate random bytes sized for an IV or a salt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := random.String(purpose, encoding)
			if err != nil {
				return err
			}
			a.log.WithField("purpose", purpose).Info("generated random bytes")
			a.println(cmd, s)
			return nil
		},
	}
	enumFlag(cmd.Flags(), &purpose, "purpose", "p", random.PurposeSalt,
		"iv (16 bytes) or salt (24 bytes)", random.PurposeIV, random.PurposeSalt)
	enumFlag(cmd.Flags(), &encoding, "encoding", "e", random.EncodingBase64,
		"output encoding", random.EncodingBase64, random.EncodingHex, random.EncodingRaw)
	return cmd
}

func (a *app) newHMACCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hmac <text>",
		Short: "Print the HMAC-SHA256 digest of text keyed by the pepper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := hashing.NewKeyedHasher(a.cfg.Pepper)
			if err != nil {
				return err
			}
			a.println(cmd, h.Hash(args[0]))
			return nil
		},
	}
}

func (a *app) newShakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shake <text>",
		Short: "Print the SHAKE256 digest of text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.println(cmd, hashing.NewShake256Hasher().Hash(args[0]))
			return nil
		},
	}
}

func (a *app) newEncryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <plaintext>",
		Short: "Encrypt plaintext into an AES-GCM envelope keyed by the salt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := encryption.NewEncrypter(a.cfg.Salt)
			if err != nil {
				return err
			}
			envelope, err := enc.EncryptString(args[0])
			if err != nil {
				return err
			}
			a.log.WithField("cipher", enc.GetCipher()).Info("encrypted value")
			a.println(cmd, envelope)
			return nil
		},
	}
}

func (a *app) newDecryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <envelope>",
		Short: "Decrypt an AES-GCM envelope keyed by the salt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := encryption.NewEncrypter(a.cfg.Salt)
			if err != nil {
				return err
			}
			plaintext, err := enc.DecryptString(args[0])
			if err != nil {
				return err
			}
			a.println(cmd, plaintext)
			return nil
		},
	}
}

func (a *app) newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <password>",
		Short: "Hash a password into a storable Argon2 record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := a.passwordHasher()
			if err != nil {
				return err
			}
			record, err := ph.Hash(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.println(cmd, record)
			return nil
		},
	}
}

func (a *app) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <record> <password>",
		Short: "Check a password against an Argon2 record",
		Long:  "Check a password against an Argon2 record. Exits 1 when the password does not match.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := a.passwordHasher()
			if err != nil {
				return err
			}
			if !ph.Verify(cmd.Context(), args[0], args[1]) {
				a.println(cmd, color.RedString("✗")+" password does not match")
				return errMismatch
			}
			a.println(cmd, color.GreenString("✓")+" password matches")
			return nil
		},
	}
}

func (a *app) passwordHasher() (*hashing.PasswordHasher, error) {
	driver, err := a.cfg.PasswordDriver()
	if err != nil {
		return nil, err
	}
	return hashing.NewPasswordHasher(a.cfg.Pepper, a.cfg.Salt,
		hashing.WithHasher(driver),
		hashing.WithLogger(a.log),
	)
}
