package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is the only failure VerifyPassword reports. A wrong
// password and a malformed stored hash are deliberately indistinguishable.
var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword produces a salted bcrypt hash of the plaintext. The salt and
// cost factor are embedded in the returned string, so no extra bookkeeping is
// needed to verify later.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// It never panics on caller-supplied input: any mismatch, including a hash
// that is not valid bcrypt output, comes back as ErrPasswordMismatch.
func VerifyPassword(password, encodedHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
