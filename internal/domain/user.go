// Package domain contains the core business entities for Clipstream.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the video sharing service.
package domain

import (
	"time"
)

// User represents a registered account in the system.
// Users own videos and authenticate with a username or email plus password.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Username is the unique username for login and display.
	Username string `json:"username"`

	// Email is the unique email address for the user.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This is never exposed in API responses.
	PasswordHash string `json:"-"`

	// RegisteredAt is the timestamp when the account was created.
	RegisteredAt time.Time `json:"registered_at"`
}

// NewUser creates a new User with the registration timestamp set.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		RegisteredAt: time.Now().UTC(),
	}
}

// IsOwner reports whether the acting user may modify a resource owned by
// ownerID. An absent actor (zero ID) is never an owner.
func IsOwner(actorID, ownerID int64) bool {
	return actorID != 0 && actorID == ownerID
}
