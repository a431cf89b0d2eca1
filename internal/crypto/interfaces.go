package crypto

// PasswordHasher derives and verifies stored password representations.
// It knows nothing about users, storage, or sessions — its only job is the
// key-derivation scheme.
//
// The stored format is base64(salt) + "$" + base64(derivedKey). A fresh
// random salt is generated on every Hash call, so hashing the same password
// twice yields different encodings.
type PasswordHasher interface {
	// Hash derives a key from password with a fresh random salt and
	// returns the encoded salt+key pair.
	Hash(password string) (string, error)

	// Verify re-derives the key from password using the salt embedded in
	// stored and reports whether the full encoded strings match. A
	// malformed stored value verifies as false, never as an error — the
	// caller treats it exactly like a wrong password.
	Verify(password, stored string) bool
}
