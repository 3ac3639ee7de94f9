// Package auth provides bearer-token authentication for Clipstream.
// Identity tokens are self-contained HS256 JWTs carrying the user ID and
// username; nothing is stored server-side.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window for issued tokens.
const DefaultTokenTTL = 2 * time.Hour

// Claims is the JWT payload for an identity token.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity is the resolved identity of an authenticated caller.
type Identity struct {
	UserID   int64
	Username string
}

// TokenService issues and verifies identity tokens. The signing secret is
// fixed at construction; it is never read from the environment at call time.
type TokenService struct {
	secret []byte
	ttl    time.Duration

	// now is the clock used for issuing and validating tokens.
	// Overridable in tests.
	now func() time.Time
}

// NewTokenService creates a TokenService. It fails if the secret is empty so
// that a misconfigured deployment aborts at startup rather than minting
// unverifiable tokens.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrSecretMissing
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue creates a signed token for the given user, valid for the service TTL.
func (s *TokenService) Issue(userID int64, username string) (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. Verification is all-or-nothing:
// on any failure no partial claims are returned. Expiry is reported distinctly
// from signature/payload problems.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
