// Package auth provides bearer-token authentication for Clipstream.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// identityContextKey is the context key for the resolved Identity.
type identityContextKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext returns the identity attached by the middleware,
// if any. The second return value is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}

// ViewerID returns the caller's user ID, or zero for anonymous requests.
// Zero is never a valid user ID.
func ViewerID(ctx context.Context) int64 {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return 0
	}
	return id.UserID
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is absent or not a bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Require creates middleware that rejects requests without a valid identity
// token. A missing or expired token is an authentication failure (401); a
// token that fails signature or payload checks is client data the caller
// must fix (400).
func Require(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, ErrNoToken.Error())
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("token verification failed")
				if errors.Is(err, ErrTokenExpired) {
					writeAuthError(w, http.StatusUnauthorized, ErrTokenExpired.Error())
					return
				}
				writeAuthError(w, http.StatusBadRequest, ErrTokenInvalid.Error())
				return
			}

			identity := Identity{UserID: claims.UserID, Username: claims.Username}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// Optional creates middleware that resolves an identity when a valid token is
// present but never fails the request. Public endpoints use it to personalize
// behavior for authenticated callers.
func Optional(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("ignoring unverifiable token on public endpoint")
				next.ServeHTTP(w, r)
				return
			}

			identity := Identity{UserID: claims.UserID, Username: claims.Username}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// writeAuthError writes a JSON error response.
func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
