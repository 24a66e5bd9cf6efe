package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	UpdateLastLogin(id string) error
	UpdatePassword(id, currentPassword, newPassword string) error
	SeedAdmin(email, password, name string) error
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var user models.User
	var active int
	var lastLogin sql.NullTime
	err := scanner.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role, &active, &lastLogin, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	user.IsActive = active != 0
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	return user, nil
}

const userColumns = "id, email, password_hash, name, role, is_active, last_login, created_at"

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the
// password hash. Emails are case-normalized to lowercase.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", strings.ToLower(email))
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies a user's credentials. Unknown email and wrong
// password both return ErrInvalidCredentials; a deactivated account is only
// reported after the password matched.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return models.User{}, ErrAccountDeactivated
	}

	return user, nil
}

// UpdateLastLogin stamps the user's last successful login time.
func (s *UserService) UpdateLastLogin(id string) error {
	_, err := s.db.Exec("UPDATE users SET last_login = ? WHERE id = ?", time.Now().UTC(), id)
	return err
}

// UpdatePassword verifies the current password, then hashes and sets a new
// password for a user.
func (s *UserService) UpdatePassword(id, currentPassword, newPassword string) error {
	var currentHash string
	row := s.db.QueryRow("SELECT password_hash FROM users WHERE id = ?", id)
	if err := row.Scan(&currentHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(currentPassword)) != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	_, err = s.db.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashedPassword), id)
	return err
}

// SeedAdmin creates the admin account from configuration when it does not
// exist yet. This is the only way accounts come into being; no route creates
// users.
func (s *UserService) SeedAdmin(email, password, name string) error {
	if email == "" || password == "" {
		return fmt.Errorf("admin seed credentials are not configured")
	}
	email = strings.ToLower(email)

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO users(id, email, password_hash, name, role, is_active) VALUES(?, ?, ?, ?, ?, 1)",
		uuid.New().String(), email, string(hashedPassword), name, models.RoleAdmin,
	)
	return err
}
