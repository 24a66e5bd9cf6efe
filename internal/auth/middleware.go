package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ekaraslan/portfolio-be/internal/models"
)

// UserLoader loads users for the Authenticate gate.
type UserLoader interface {
	GetUserByID(id string) (models.User, error)
}

type contextKey string

const userContextKey = contextKey("currentUser")

// CurrentUser returns the authenticated user attached by Authenticate.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// Authenticate validates the bearer token, loads the user and attaches it to
// the request context. The token stands alone: no session lookup happens here,
// and no database write beyond the read.
func Authenticate(users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				deny(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := ValidateJWT(tokenStr)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			user, err := users.GetUserByID(claims.UserID)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			// A valid token proves identity; deactivation still cuts access
			// immediately, not at token expiry.
			if !user.IsActive {
				deny(w, http.StatusForbidden, "Account is deactivated")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin runs after Authenticate and rejects non-admin users.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok || user.Role != models.RoleAdmin {
			deny(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
