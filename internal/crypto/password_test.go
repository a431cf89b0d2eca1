package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	stored, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	require.NotEmpty(t, stored)

	assert.True(t, hasher.Verify("s3cret-password", stored))
	assert.False(t, hasher.Verify("wrong-password", stored))
}

func TestPasswordHasher_Hash_FreshSaltEachCall(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same-password", first))
	assert.True(t, hasher.Verify("same-password", second))
}

func TestPasswordHasher_Hash_EncodingShape(t *testing.T) {
	hasher := NewPasswordHasher()

	stored, err := hasher.Hash("pw")
	require.NoError(t, err)

	parts := strings.SplitN(stored, separator, 2)
	require.Len(t, parts, 2)
	assert.NotEmpty(t, parts[0])
	assert.NotEmpty(t, parts[1])
}

func TestPasswordHasher_Verify_MalformedStored(t *testing.T) {
	hasher := NewPasswordHasher()

	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"no separator", "c2FsdA=="},
		{"bad base64 salt", "not*base64$c2FsdA=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, hasher.Verify("anything", tt.stored))
		})
	}
}

func TestSigningKey_RoundTrip(t *testing.T) {
	key, err := GenerateSigningKey()
	require.NoError(t, err)
	require.Len(t, key, signingKeyLen)

	encoded := EncodeSigningKey(key)
	decoded, err := DecodeSigningKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
}

func TestSigningKey_Generate_Distinct(t *testing.T) {
	first, err := GenerateSigningKey()
	require.NoError(t, err)
	second, err := GenerateSigningKey()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecodeSigningKey_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"bad base64", "%%%"},
		{"wrong length", "c2hvcnQ="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSigningKey(tt.encoded)
			require.Error(t, err)
		})
	}
}
