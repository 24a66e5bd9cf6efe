package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ekaraslan/portfolio-be/internal/api"
	"github.com/ekaraslan/portfolio-be/internal/auth"
	"github.com/ekaraslan/portfolio-be/internal/config"
	"github.com/ekaraslan/portfolio-be/internal/database"
	appmw "github.com/ekaraslan/portfolio-be/internal/middleware"
	"github.com/ekaraslan/portfolio-be/internal/services"
	"github.com/ekaraslan/portfolio-be/internal/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "secret123"
)

type testServer struct {
	router    http.Handler
	db        *sql.DB
	blocklist *appmw.Blocklist
	sessions  *services.SessionService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	auth.SetSecret("test-secret")

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	users := services.NewUserService(db)
	require.NoError(t, users.SeedAdmin(adminEmail, adminPassword, "Admin"))
	sessions := services.NewSessionService(db)

	hub := websocket.NewHub()
	go hub.Run()

	blocklist := appmw.NewBlocklist()

	cfg := &config.Config{
		UploadPath:     t.TempDir(),
		JWTSecret:      "test-secret",
		AppEnv:         "development",
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	router := api.NewRouter(&api.Deps{
		Cfg:            cfg,
		Hub:            hub,
		Blocklist:      blocklist,
		GeneralLimiter: appmw.NewRateLimiter(100, 15*time.Minute),
		LoginLimiter:   appmw.NewRateLimiter(5, 15*time.Minute),
		Users:          users,
		Sessions:       sessions,
		Events:         services.NewEventService(db),
		Catalog:        services.NewCatalogService(db),
		Projects:       services.NewProjectService(db),
		Blogs:          services.NewBlogService(db),
		Contacts:       services.NewContactService(db),
		Content:        services.NewContentService(db),
	})

	return &testServer{router: router, db: db, blocklist: blocklist, sessions: sessions}
}

func (ts *testServer) request(t *testing.T, method, path, ip, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", ip)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) login(t *testing.T, ip, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return ts.request(t, http.MethodPost, "/api/auth/login", ip, "",
		map[string]string{"email": email, "password": password})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.request(t, http.MethodGet, "/api/health", "10.0.0.1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Server is running"}`, rec.Body.String())
}

func TestLoginSuccess(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.login(t, "10.0.1.1", adminEmail, adminPassword)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, adminEmail, user["email"])
	assert.Equal(t, "admin", user["role"])
	assert.NotContains(t, user, "passwordHash", "hash never leaves the server")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "portfolio_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// Login is audited.
	var events int
	require.NoError(t, ts.db.QueryRow("SELECT COUNT(*) FROM events WHERE type = 'auth.login.success'").Scan(&events))
	assert.Equal(t, 1, events)

	// Last login is stamped.
	var lastLogin sql.NullTime
	require.NoError(t, ts.db.QueryRow("SELECT last_login FROM users WHERE email = ?", adminEmail).Scan(&lastLogin))
	assert.True(t, lastLogin.Valid)
}

func TestLoginMissingFields(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.login(t, "10.0.2.1", adminEmail, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Email and password are required"}`, rec.Body.String())
}

func TestLoginIndistinguishableFailures(t *testing.T) {
	ts := newTestServer(t)

	unknown := ts.login(t, "10.0.3.1", "nobody@example.com", "whatever")
	wrongPw := ts.login(t, "10.0.3.1", adminEmail, "wrong")

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String(),
		"unknown email and wrong password must be byte-identical")
	assert.JSONEq(t, `{"success":false,"message":"Invalid credentials"}`, unknown.Body.String())

	var failed int
	require.NoError(t, ts.db.QueryRow("SELECT COUNT(*) FROM events WHERE type = 'auth.login.failed'").Scan(&failed))
	assert.Equal(t, 2, failed, "every failed attempt is audited")
}

func TestLoginDeactivated(t *testing.T) {
	ts := newTestServer(t)

	_, err := ts.db.Exec("UPDATE users SET is_active = 0 WHERE email = ?", adminEmail)
	require.NoError(t, err)

	rec := ts.login(t, "10.0.4.1", adminEmail, adminPassword)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Account is deactivated"}`, rec.Body.String())
}

func TestLoginRateLimitFailedAttemptsOnly(t *testing.T) {
	ts := newTestServer(t)
	ip := "10.0.5.1"

	// Five failures are answered normally, the sixth attempt is throttled.
	for i := 0; i < 5; i++ {
		rec := ts.login(t, ip, adminEmail, "wrong")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i+1)
	}
	rec := ts.login(t, ip, adminEmail, adminPassword)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Too many login attempts, please try again later."}`, rec.Body.String())

	// Successful logins never count toward the limit.
	ip2 := "10.0.5.2"
	for i := 0; i < 20; i++ {
		rec := ts.login(t, ip2, adminEmail, adminPassword)
		require.Equal(t, http.StatusOK, rec.Code, "login %d", i+1)
	}

	// Another client is unaffected by the first client's failures.
	rec = ts.login(t, "10.0.5.3", adminEmail, adminPassword)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenRoundtrip(t *testing.T) {
	ts := newTestServer(t)

	body := decodeBody(t, ts.login(t, "10.0.6.1", adminEmail, adminPassword))
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	rec := ts.request(t, http.MethodGet, "/api/auth/me", "10.0.6.1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody(t, rec)
	user, ok := me["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, adminEmail, user["email"])
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/auth/me", "10.0.7.1", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Authentication required"}`, rec.Body.String())

	rec = ts.request(t, http.MethodGet, "/api/contacts/", "10.0.7.1", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRejectEditors(t *testing.T) {
	ts := newTestServer(t)

	// Editors can authenticate but are not admins.
	hash, err := bcrypt.GenerateFromPassword([]byte("editorpw"), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = ts.db.Exec(
		"INSERT INTO users(id, email, password_hash, name, role, is_active) VALUES(?, ?, ?, ?, 'editor', 1)",
		uuid.New().String(), "editor@example.com", string(hash), "Editor",
	)
	require.NoError(t, err)

	body := decodeBody(t, ts.login(t, "10.0.8.1", "editor@example.com", "editorpw"))
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	rec := ts.request(t, http.MethodGet, "/api/events", "10.0.8.1", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Admin access required"}`, rec.Body.String())

	// The same token still reaches non-admin authenticated routes.
	rec = ts.request(t, http.MethodGet, "/api/auth/me", "10.0.8.1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestChangePassword(t *testing.T) {
	ts := newTestServer(t)

	body := decodeBody(t, ts.login(t, "10.0.9.1", adminEmail, adminPassword))
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	rec := ts.request(t, http.MethodPost, "/api/auth/change-password", "10.0.9.1", token,
		map[string]string{"currentPassword": "wrong", "newPassword": "newsecret"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Current password is incorrect"}`, rec.Body.String())

	rec = ts.request(t, http.MethodPost, "/api/auth/change-password", "10.0.9.1", token,
		map[string]string{"currentPassword": adminPassword, "newPassword": "short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"New password must be at least 6 characters"}`, rec.Body.String())

	rec = ts.request(t, http.MethodPost, "/api/auth/change-password", "10.0.9.1", token,
		map[string]string{"currentPassword": adminPassword, "newPassword": "newsecret"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Password updated successfully"}`, rec.Body.String())

	// The old credentials are dead, the new ones work, and the issued token
	// keeps working until it expires on its own.
	require.Equal(t, http.StatusUnauthorized, ts.login(t, "10.0.9.2", adminEmail, adminPassword).Code)
	require.Equal(t, http.StatusOK, ts.login(t, "10.0.9.2", adminEmail, "newsecret").Code)
	require.Equal(t, http.StatusOK, ts.request(t, http.MethodGet, "/api/auth/me", "10.0.9.1", token, nil).Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	ts := newTestServer(t)

	loginRec := ts.login(t, "10.0.10.1", adminEmail, adminPassword)
	require.Equal(t, http.StatusOK, loginRec.Code)
	token, _ := decodeBody(t, loginRec)["token"].(string)
	cookies := loginRec.Result().Cookies()
	require.Len(t, cookies, 1)
	sessionID := cookies[0].Value

	_, err := ts.sessions.GetSession(sessionID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("X-Forwarded-For", "10.0.10.1")
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Logged out successfully"}`, rec.Body.String())

	_, err = ts.sessions.GetSession(sessionID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestBlocklistRejectsBeforeRouting(t *testing.T) {
	ts := newTestServer(t)
	ts.blocklist.Block("10.0.11.1")

	rec := ts.request(t, http.MethodGet, "/api/health", "10.0.11.1", "", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Access denied"}`, rec.Body.String())

	ts.blocklist.Unblock("10.0.11.1")
	rec = ts.request(t, http.MethodGet, "/api/health", "10.0.11.1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGeneralRateLimit(t *testing.T) {
	ts := newTestServer(t)
	ip := "10.0.12.1"

	for i := 0; i < 100; i++ {
		rec := ts.request(t, http.MethodGet, "/api/health", ip, "", nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}
	rec := ts.request(t, http.MethodGet, "/api/health", ip, "", nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Too many requests from this IP, please try again later."}`, rec.Body.String())
}

func TestNotFoundEnvelope(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/services/does-not-exist", "10.0.13.1", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Service not found"}`, rec.Body.String())
}

func TestContactSubmission(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/contacts/", "10.0.14.1", "",
		map[string]string{"name": "Jane", "email": "jane@example.com", "subject": "Quote", "message": "hi"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var stored string
	require.NoError(t, ts.db.QueryRow("SELECT ip_address FROM contacts WHERE email = 'jane@example.com'").Scan(&stored))
	assert.Equal(t, "10.0.14.1", stored, "submitter address is captured for the admin panel")
}
