// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Limitclean Authors

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// separator splits the encoded salt from the encoded derived key in the
// stored representation.
const separator = "$"

// passwordHasher is the private implementation of [PasswordHasher].
type passwordHasher struct {
	// PBKDF2 tuning parameters. Stored in the struct so tests can lower
	// the iteration count without touching the production defaults.
	iterations int
	saltLen    int
	keyLen     int
}

// NewPasswordHasher constructs a [PasswordHasher] using PBKDF2-SHA256 with:
//   - iteration count: 120 000
//   - salt length:     16 bytes (128 bits)
//   - key length:      32 bytes (256 bits)
func NewPasswordHasher() PasswordHasher {
	return &passwordHasher{
		iterations: 120_000,
		saltLen:    16,
		keyLen:     32,
	}
}

// Hash implements [PasswordHasher]. It reads a fresh salt from the OS
// CSPRNG, derives the key, and returns the encoded pair. Returns an error
// only if the random read fails.
func (p *passwordHasher) Hash(password string) (string, error) {
	salt := make([]byte, p.saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate password salt: %w", err)
	}

	return p.encode(password, salt), nil
}

// Verify implements [PasswordHasher]. It splits stored into its salt and
// key parts, re-derives the key with the stored salt, and compares the
// complete encoded strings. The derivation cost dominates timing, so a
// plain string compare of the encodings is sufficient here.
func (p *passwordHasher) Verify(password, stored string) bool {
	parts := strings.SplitN(stored, separator, 2)
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	return p.encode(password, salt) == stored
}

func (p *passwordHasher) encode(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, p.iterations, p.keyLen, sha256.New)
	return base64.StdEncoding.EncodeToString(salt) + separator + base64.StdEncoding.EncodeToString(key)
}
