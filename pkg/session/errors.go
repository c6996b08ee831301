package session

import "errors"

var (
	// ErrNotConfigured is returned when sessions are used on an app built without WithSession.
	ErrNotConfigured = errors.New("session: not configured")

	ErrNotFound     = errors.New("session: not found")
	ErrExpired      = errors.New("session: expired")
	ErrTypeMismatch = errors.New("session: type mismatch")
)
