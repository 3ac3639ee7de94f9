// Package service provides business logic services for Clipstream.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prn-tf/clipstream/internal/domain"
)

// Common service errors. Business-rule sentinels are the domain package's,
// so callers can match either layer's name with errors.Is. Errors about the
// shape of a request (weak password, malformed email) live here only.
var (
	// User errors
	ErrUserNotFound       = domain.ErrUserNotFound
	ErrUserAlreadyExists  = domain.ErrUserAlreadyExists
	ErrInvalidCredentials = domain.ErrInvalidCredentials
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrInvalidUsername    = errors.New("invalid username: must be 3-255 characters")
	ErrInvalidEmail       = errors.New("invalid email format")

	// Video errors
	ErrVideoNotFound = domain.ErrVideoNotFound
	ErrInvalidTitle  = domain.ErrVideoTitleEmpty

	// Authorization errors
	ErrForbidden        = domain.ErrAccessDenied
	ErrNotAuthenticated = errors.New("authentication required")

	// General errors
	ErrInternalError = errors.New("internal server error")
)

// WeakPasswordError reports every password policy rule the candidate
// password violated, so a client can show the complete list at once.
type WeakPasswordError struct {
	Problems []string
}

// Error implements the error interface.
func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("%s: %s", ErrWeakPassword.Error(), strings.Join(e.Problems, "; "))
}

// Unwrap returns ErrWeakPassword for errors.Is.
func (e *WeakPasswordError) Unwrap() error {
	return ErrWeakPassword
}

// DuplicateFieldError reports which unique fields of a signup request
// collide with an existing account. Both username and email are checked
// before reporting so the client sees every conflict together.
type DuplicateFieldError struct {
	Fields []string
}

// Error implements the error interface.
func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("%s: %s already taken", ErrUserAlreadyExists.Error(), strings.Join(e.Fields, ", "))
}

// Unwrap returns ErrUserAlreadyExists for errors.Is.
func (e *DuplicateFieldError) Unwrap() error {
	return ErrUserAlreadyExists
}
