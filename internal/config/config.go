package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	UploadPath   string

	JWTSecret string
	AppEnv    string // "development" or "production"

	// Origins allowed to call the API with credentials (public site + admin panel).
	AllowedOrigins []string

	// Admin account seeded at startup when missing.
	AdminEmail    string
	AdminPassword string
	AdminName     string

	// Standard cron expression driving the maintenance janitor.
	JanitorCron string

	// When true, a password change destroys the user's server-side sessions.
	// Bearer tokens stay valid until their own expiry either way.
	RevokeSessionsOnPasswordChange bool
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "5000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	origins := []string{
		getEnv("FRONTEND_URL", "http://localhost:3000"),
		getEnv("ADMIN_URL", "http://localhost:3001"),
	}

	return &Config{
		ServerPort:                     port,
		DatabasePath:                   getEnv("DATABASE_PATH", "./portfolio.db"),
		UploadPath:                     getEnv("UPLOAD_PATH", "./uploads"),
		JWTSecret:                      secret,
		AppEnv:                         getEnv("APP_ENV", "development"),
		AllowedOrigins:                 origins,
		AdminEmail:                     strings.ToLower(getEnv("ADMIN_EMAIL", "")),
		AdminPassword:                  getEnv("ADMIN_PASSWORD", ""),
		AdminName:                      getEnv("ADMIN_NAME", "Admin"),
		JanitorCron:                    getEnv("JANITOR_CRON", "*/10 * * * *"),
		RevokeSessionsOnPasswordChange: getEnv("REVOKE_SESSIONS_ON_PASSWORD_CHANGE", "false") == "true",
	}, nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
