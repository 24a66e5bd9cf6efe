package models

import "time"

// Event types recorded by the audit log.
const (
	EventLoginSuccess = "auth.login.success"
	EventLoginFailed  = "auth.login.failed"
	EventLogout       = "auth.logout"
	EventContactNew   = "contact.new"
)

// Event represents a loggable action or alert in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g. "auth.login.failed", "contact.new"
	Level     string    `json:"level"` // "info", "warn", "error"
	Message   string    `json:"message"`
	Actor     string    `json:"actor,omitempty"` // email of the acting user, if any
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
