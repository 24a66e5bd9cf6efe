package services

import "errors"

// Sentinel errors shared across services. Handlers map these onto the
// HTTP error envelope.
var (
	// ErrNotFound is returned by lookups that miss.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials covers both "no such user" and "wrong password".
	// The two cases are deliberately indistinguishable to resist account
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeactivated is returned when credentials match but the
	// account is disabled. Identity is already confirmed at that point, so
	// the distinct message leaks nothing.
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrWrongPassword is returned by password change when the current
	// password does not match.
	ErrWrongPassword = errors.New("current password is incorrect")
)
