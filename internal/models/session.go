package models

import "time"

// Session is a server-side record backing the session cookie. It exists
// alongside the bearer token as an independent credential; route protection
// relies on the token alone.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
