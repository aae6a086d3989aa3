// Package credentials is the credential store: one-way, salted password
// hashing and verification. Plaintext never leaves this package's call
// boundary and is never stored.
package credentials

import "golang.org/x/crypto/bcrypt"

// Hash derives a salted bcrypt hash from the plaintext. Empty passwords are
// accepted; length policy belongs to the callers.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. bcrypt's
// comparison is constant-time with respect to the secret.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
