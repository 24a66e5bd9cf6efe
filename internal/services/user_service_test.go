package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ekaraslan/portfolio-be/internal/database"
	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func seedAdmin(t *testing.T, svc *UserService) models.User {
	t.Helper()
	require.NoError(t, svc.SeedAdmin("Admin@Example.com", "secret123", "Admin"))
	user, err := svc.GetUserByEmail("admin@example.com")
	require.NoError(t, err)
	return user
}

func TestSeedAdmin(t *testing.T) {
	svc := NewUserService(setupDB(t))
	user := seedAdmin(t, svc)

	assert.Equal(t, "admin@example.com", user.Email, "email is stored lowercase")
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.LastLogin)

	// Seeding again is a no-op, not an error.
	require.NoError(t, svc.SeedAdmin("admin@example.com", "other", "Admin"))
	again, err := svc.GetUserByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, again.PasswordHash)
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(setupDB(t))
	seedAdmin(t, svc)

	user, err := svc.Authenticate("admin@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)

	// Lookup is case-insensitive on email.
	_, err = svc.Authenticate("ADMIN@example.com", "secret123")
	assert.NoError(t, err)
}

func TestAuthenticateIndistinguishableFailures(t *testing.T) {
	svc := NewUserService(setupDB(t))
	seedAdmin(t, svc)

	_, unknownErr := svc.Authenticate("nobody@example.com", "whatever")
	_, wrongPwErr := svc.Authenticate("admin@example.com", "wrong")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongPwErr, "unknown email and wrong password must be indistinguishable")
}

func TestAuthenticateDeactivated(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db)
	user := seedAdmin(t, svc)

	_, err := db.Exec("UPDATE users SET is_active = 0 WHERE id = ?", user.ID)
	require.NoError(t, err)

	_, err = svc.Authenticate("admin@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountDeactivated)

	// Wrong password on a deactivated account still reports bad credentials:
	// the account state is only revealed after identity is confirmed.
	_, err = svc.Authenticate("admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateLastLogin(t *testing.T) {
	svc := NewUserService(setupDB(t))
	user := seedAdmin(t, svc)

	require.NoError(t, svc.UpdateLastLogin(user.ID))

	updated, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.LastLogin)
}

func TestUpdatePassword(t *testing.T) {
	svc := NewUserService(setupDB(t))
	user := seedAdmin(t, svc)

	err := svc.UpdatePassword(user.ID, "wrong", "newsecret")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.UpdatePassword(user.ID, "secret123", "newsecret"))

	_, err = svc.Authenticate("admin@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate("admin@example.com", "newsecret")
	assert.NoError(t, err)
}

func TestGetUserByIDMiss(t *testing.T) {
	svc := NewUserService(setupDB(t))
	_, err := svc.GetUserByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
