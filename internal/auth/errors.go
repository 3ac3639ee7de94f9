// Package auth provides bearer-token authentication for Clipstream.
package auth

import "errors"

// Authentication errors.
var (
	// ErrNoToken indicates the request carried no bearer token.
	ErrNoToken = errors.New("access denied: no token provided")

	// ErrTokenInvalid indicates the token signature or payload is malformed.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired indicates the token's validity window has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrSecretMissing indicates the signing secret was not configured.
	// This is a deployment problem, not a client error.
	ErrSecretMissing = errors.New("token signing secret is not configured")
)
