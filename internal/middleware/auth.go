// Package middleware holds the HTTP middleware shared by all handlers.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pandamarket/api/pkg/auth"
)

type contextKey string

const (
	// UserIDKey carries the authenticated caller's user id
	UserIDKey contextKey = "user_id"
	// NicknameKey carries the authenticated caller's nickname
	NicknameKey contextKey = "nickname"
)

// UserID extracts the authenticated user id from a request context.
// Returns 0 when the request is anonymous.
func UserID(ctx context.Context) uint {
	id, _ := ctx.Value(UserIDKey).(uint)
	return id
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// Auth validates the JWT bearer token and injects the caller identity
// into the request context, rejecting with 401 otherwise
func Auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			RespondMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			RespondMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, NicknameKey, claims.Nickname)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// OptionalAuth injects the caller identity when a valid token is present
// but lets anonymous requests through. Reads use it to decorate responses
// with per-viewer state.
func OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if claims, err := auth.ValidateToken(token); err == nil {
				ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
				ctx = context.WithValue(ctx, NicknameKey, claims.Nickname)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	}
}
