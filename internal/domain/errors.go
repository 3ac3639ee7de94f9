// Package domain contains the core business entities for Clipstream.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same username/email exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates authentication failed. It deliberately
	// does not say whether the identifier or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrVideoNotFound indicates the requested video does not exist.
	ErrVideoNotFound = errors.New("video not found")

	// ErrVideoTitleEmpty indicates the video title is missing.
	ErrVideoTitleEmpty = errors.New("video title must not be empty")

	// ErrAccessDenied indicates the caller holds a valid identity but does
	// not own the resource it is trying to read or modify.
	ErrAccessDenied = errors.New("access denied")
)

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string

	// Resource identifies the affected resource (e.g., video ID, username).
	Resource string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	switch {
	case e.Message != "" && e.Resource != "":
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Message, e.Resource)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	case e.Resource != "":
		return fmt.Sprintf("%s (%s)", e.Err.Error(), e.Resource)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message, resource string) *DomainError {
	return &DomainError{
		Err:      err,
		Message:  message,
		Resource: resource,
	}
}
