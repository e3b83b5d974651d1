package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

const (
	// bcryptCost trades login latency for brute-force resistance
	bcryptCost = 12
	// MinPasswordLength is enforced at hashing time so registration and
	// password changes share one rule
	MinPasswordLength = 8
)

// HashPassword bcrypt-hashes a plaintext password, rejecting passwords
// shorter than MinPasswordLength before any hashing work
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// VerifyPassword compares a plaintext password against a stored hash. A
// mismatch comes back as ErrPasswordMismatch so callers can distinguish bad
// credentials from bcrypt failures.
func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
