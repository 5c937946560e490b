// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor for new password hashes.
const DefaultCost = 12

// HashPassword returns a salted bcrypt hash of plaintext at DefaultCost.
func HashPassword(plaintext string) (string, error) {
	return HashPasswordCost(plaintext, DefaultCost)
}

// HashPasswordCost is HashPassword with an explicit work factor.
func HashPasswordCost(plaintext string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// VerifyPassword reports whether plaintext matches hash.
// A malformed hash never matches.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
