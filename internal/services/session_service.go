package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/google/uuid"
)

// SessionTTL is how long a server-side session (and its cookie) lives.
const SessionTTL = 24 * time.Hour

// SessionServiceProvider defines the interface for session services.
type SessionServiceProvider interface {
	CreateSession(user models.User) (models.Session, error)
	GetSession(id string) (models.Session, error)
	DeleteSession(id string) error
	DeleteSessionsForUser(userID string) error
	DeleteExpired() (int64, error)
}

// SessionService manages server-side session records. Sessions are an
// independent credential next to the bearer token: route protection checks
// the token alone, sessions exist so logout has something to revoke.
type SessionService struct {
	db *sql.DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *sql.DB) *SessionService {
	return &SessionService{db: db}
}

// CreateSession inserts a session row for a freshly logged-in user.
func (s *SessionService) CreateSession(user models.User) (models.Session, error) {
	sess := models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(SessionTTL).UTC(),
	}

	_, err := s.db.Exec(
		"INSERT INTO sessions(id, user_id, email, expires_at) VALUES(?, ?, ?, ?)",
		sess.ID, sess.UserID, sess.Email, sess.ExpiresAt,
	)
	if err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// GetSession retrieves an unexpired session by its opaque identifier.
func (s *SessionService) GetSession(id string) (models.Session, error) {
	var sess models.Session
	row := s.db.QueryRow("SELECT id, user_id, email, expires_at, created_at FROM sessions WHERE id = ?", id)
	err := row.Scan(&sess.ID, &sess.UserID, &sess.Email, &sess.ExpiresAt, &sess.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrNotFound
		}
		return models.Session{}, err
	}
	if time.Now().After(sess.ExpiresAt) {
		return models.Session{}, ErrNotFound
	}
	return sess, nil
}

// DeleteSession destroys a single session.
func (s *SessionService) DeleteSession(id string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	return err
}

// DeleteSessionsForUser destroys every session belonging to a user. Used when
// password changes are configured to revoke sessions.
func (s *SessionService) DeleteSessionsForUser(userID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE user_id = ?", userID)
	return err
}

// DeleteExpired purges sessions past their expiry and reports how many rows
// went away. Called by the maintenance janitor.
func (s *SessionService) DeleteExpired() (int64, error) {
	res, err := s.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
