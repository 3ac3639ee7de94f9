// Package password provides one-way password hashing and password policy
// checks for Clipstream accounts.
package password

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for all new hashes.
const Cost = bcrypt.DefaultCost

// MinLength is the minimum acceptable password length.
const MinLength = 8

// Hash derives a salted bcrypt hash from a plaintext password.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash.
// A mismatch or a malformed hash yields (false, nil); only unexpected
// bcrypt failures are returned as errors.
func Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	var hashErr bcrypt.InvalidHashPrefixError
	if errors.As(err, &hashErr) {
		return false, nil
	}
	var versionErr bcrypt.HashVersionTooNewError
	if errors.As(err, &versionErr) {
		return false, nil
	}
	if errors.Is(err, bcrypt.ErrHashTooShort) {
		return false, nil
	}
	return false, fmt.Errorf("failed to verify password: %w", err)
}

// Validate checks a plaintext password against the account password policy.
// All violated rules are reported together so the caller sees the complete
// set of problems in one pass.
func Validate(plaintext string) []string {
	var problems []string

	if len(plaintext) < MinLength {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters long", MinLength))
	}

	var hasDigit, hasUpper, hasLower bool
	for _, r := range plaintext {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}

	if !hasDigit {
		problems = append(problems, "password must contain a number")
	}
	if !hasUpper {
		problems = append(problems, "password must contain an uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "password must contain a lowercase letter")
	}

	return problems
}
