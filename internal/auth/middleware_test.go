package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ekaraslan/portfolio-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserLoader struct {
	users map[string]models.User
}

func (s *stubUserLoader) GetUserByID(id string) (models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return models.User{}, fmt.Errorf("user %s not found", id)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingHeader(t *testing.T) {
	SetSecret("test-secret")
	handler := Authenticate(&stubUserLoader{})(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Authentication required"}`, rec.Body.String())
}

func TestAuthenticateInvalidToken(t *testing.T) {
	SetSecret("test-secret")
	handler := Authenticate(&stubUserLoader{})(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateUserGone(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateJWT(models.User{ID: "ghost", Email: "ghost@example.com"})
	require.NoError(t, err)

	handler := Authenticate(&stubUserLoader{users: map[string]models.User{}})(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateDeactivated(t *testing.T) {
	SetSecret("test-secret")
	user := models.User{ID: "user-1", Email: "admin@example.com", Role: models.RoleAdmin}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	loader := &stubUserLoader{users: map[string]models.User{"user-1": user}}
	handler := Authenticate(loader)(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Account is deactivated"}`, rec.Body.String())
}

func TestAuthenticateAttachesUser(t *testing.T) {
	SetSecret("test-secret")
	user := models.User{ID: "user-1", Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	loader := &stubUserLoader{users: map[string]models.User{"user-1": user}}

	var attached models.User
	handler := Authenticate(loader)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attached, _ = CurrentUser(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", attached.ID)
	assert.Equal(t, "admin@example.com", attached.Email)
}

func TestRequireAdmin(t *testing.T) {
	SetSecret("test-secret")
	editor := models.User{ID: "user-2", Email: "editor@example.com", Role: models.RoleEditor, IsActive: true}
	admin := models.User{ID: "user-1", Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true}
	loader := &stubUserLoader{users: map[string]models.User{"user-1": admin, "user-2": editor}}

	handler := Authenticate(loader)(RequireAdmin(okHandler()))

	for _, tc := range []struct {
		user models.User
		want int
	}{
		{editor, http.StatusForbidden},
		{admin, http.StatusOK},
	} {
		token, err := GenerateJWT(tc.user)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, tc.want, rec.Code, "role %s", tc.user.Role)
	}
}
