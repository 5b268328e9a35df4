package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/wanderly/trailhead/internal/models"
	pkghttp "github.com/wanderly/trailhead/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

// UserContextKey is the key for storing the authenticated user in context
const UserContextKey contextKey = "user"

// UserGetter fetches a user by id. Lookups exclude deactivated accounts.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Protect validates the bearer credential and attaches the resolved user to
// the request context. The token is read from the Authorization header
// (`Bearer <token>`) or, failing that, from the jwt cookie. A token that
// verifies but belongs to a deleted user, or that was issued before the
// user's last password change, is rejected.
func Protect(tm *TokenManager, users UserGetter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				pkghttp.WriteUnauthorized(w, "You are not logged in! Please log in to get access.")
				return
			}

			claims, err := tm.Verify(tokenString)
			if err != nil {
				pkghttp.WriteUnauthorized(w, "Invalid or expired token. Please log in again.")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					pkghttp.WriteUnauthorized(w, "The user belonging to this token no longer exists.")
					return
				}
				pkghttp.WriteUnexpected(w, "", err)
				return
			}

			if claims.IssuedAt != nil && user.PasswordChangedAfter(claims.IssuedAt.Time) {
				pkghttp.WriteUnauthorized(w, "User recently changed password! Please log in again.")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RestrictTo enforces role-based access. It must run after Protect has
// populated the request context.
func RestrictTo(roles ...string) func(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r)
			if user == nil {
				pkghttp.WriteUnauthorized(w, "You are not logged in! Please log in to get access.")
				return
			}

			if _, ok := allowed[user.Role]; !ok {
				pkghttp.WriteForbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser extracts the authenticated user from the request context.
func CurrentUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// extractToken pulls the bearer token from the Authorization header, falling
// back to the jwt cookie. The two transports are equivalent, so a malformed
// header does not suppress the cookie.
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie(JWTCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
