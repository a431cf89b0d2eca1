package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// signingKeyLen is the size of the symmetric token signing key (256 bits).
const signingKeyLen = 32

// GenerateSigningKey reads a fresh 32-byte symmetric key from the OS CSPRNG.
// The key is generated once per installation and persisted via
// [EncodeSigningKey]; regenerating it makes every previously issued token
// unverifiable.
func GenerateSigningKey() ([]byte, error) {
	key := make([]byte, signingKeyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	return key, nil
}

// EncodeSigningKey returns the base64 encoding of key for storage in the
// durable settings slot.
func EncodeSigningKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// DecodeSigningKey decodes a signing key previously encoded with
// [EncodeSigningKey]. Returns an error if the encoding is corrupted or the
// decoded key has the wrong length.
func DecodeSigningKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode signing key: %w", err)
	}
	if len(key) != signingKeyLen {
		return nil, fmt.Errorf("decode signing key: unexpected length %d", len(key))
	}
	return key, nil
}
