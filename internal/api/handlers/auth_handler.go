package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ekaraslan/portfolio-be/internal/auth"
	"github.com/ekaraslan/portfolio-be/internal/middleware"
	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/ekaraslan/portfolio-be/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SessionCookieName carries the opaque session identifier.
const SessionCookieName = "portfolio_session"

// AuthHandler handles login, logout, password change and the current-user
// endpoint.
type AuthHandler struct {
	users    services.UserServiceProvider
	sessions services.SessionServiceProvider
	events   services.EventServiceProvider
	hub      *websocket.Hub

	// Counts failed login attempts only; successful logins never increment,
	// so legitimate rapid re-logins cannot lock an account holder out.
	loginLimiter *middleware.RateLimiter

	secureCookies  bool
	revokeSessions bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	users services.UserServiceProvider,
	sessions services.SessionServiceProvider,
	events services.EventServiceProvider,
	hub *websocket.Hub,
	loginLimiter *middleware.RateLimiter,
	secureCookies, revokeSessions bool,
) *AuthHandler {
	return &AuthHandler{
		users:          users,
		sessions:       sessions,
		events:         events,
		hub:            hub,
		loginLimiter:   loginLimiter,
		secureCookies:  secureCookies,
		revokeSessions: revokeSessions,
	}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user, establishes a session and returns a bearer
// token. Unknown email and wrong password produce byte-identical responses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := middleware.RealIP(r)

	if h.loginLimiter.Blocked(ip) {
		respondError(w, http.StatusTooManyRequests, "Too many login attempts, please try again later.")
		return
	}

	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.loginLimiter.Record(ip)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.Email == "" || payload.Password == "" {
		h.loginLimiter.Record(ip)
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			h.auditLogin(models.EventLoginFailed, "warn", payload.Email, ip, "invalid credentials")
			h.loginLimiter.Record(ip)
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, services.ErrAccountDeactivated):
			h.auditLogin(models.EventLoginFailed, "warn", payload.Email, ip, "account deactivated")
			h.loginLimiter.Record(ip)
			respondError(w, http.StatusForbidden, "Account is deactivated")
		default:
			log.Error().Err(err).Str("email", payload.Email).Msg("Login failed with server error")
			respondError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	if err := h.users.UpdateLastLogin(user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to update last login")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	sess, err := h.sessions.CreateSession(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create session")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Expires:  time.Now().Add(services.SessionTTL),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	h.auditLogin(models.EventLoginSuccess, "info", user.Email, ip, "login successful")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    user.Public(),
	})
}

// Me returns the currently authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user.Public(),
	})
}

// ChangePasswordPayload defines the structure for password change requests.
type ChangePasswordPayload struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword rewrites the authenticated user's password hash. The
// existing bearer token stays valid until its own expiry; when configured,
// server-side sessions are revoked instead.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload ChangePasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.CurrentPassword == "" || payload.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "Current and new password are required")
		return
	}
	if len(payload.NewPassword) < 6 {
		respondError(w, http.StatusBadRequest, "New password must be at least 6 characters")
		return
	}

	if err := h.users.UpdatePassword(user.ID, payload.CurrentPassword, payload.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			respondError(w, http.StatusUnauthorized, "Current password is incorrect")
			return
		}
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to change password")
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if h.revokeSessions {
		if err := h.sessions.DeleteSessionsForUser(user.ID); err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to revoke sessions after password change")
		}
	}

	respondMessage(w, http.StatusOK, "Password updated successfully")
}

// Logout destroys the server-side session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.DeleteSession(cookie.Value); err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to destroy session")
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	h.auditLogin(models.EventLogout, "info", user.Email, middleware.RealIP(r), "logout")

	respondMessage(w, http.StatusOK, "Logged out successfully")
}

// auditLogin records an auth event in the audit log, the structured log and
// the admin feed. Auditing every attempt is a required side effect of the
// login flow.
func (h *AuthHandler) auditLogin(eventType, level, email, ip, reason string) {
	log.WithLevel(zerologLevel(level)).
		Str("email", email).
		Str("ip", ip).
		Str("type", eventType).
		Msg("Auth event: " + reason)

	event, err := h.events.LogEvent(eventType, level, fmt.Sprintf("%s (%s)", reason, email), email, ip)
	if err != nil {
		log.Error().Err(err).Msg("Failed to write auth audit event")
		return
	}
	if h.hub != nil {
		h.hub.BroadcastEvent(event)
	}
}

func zerologLevel(level string) zerolog.Level {
	switch level {
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
