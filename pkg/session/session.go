package session

import (
	"fmt"
	"time"
)

// Session is a server-side session addressed by its cookie token.
type Session struct {
	ID           string         `json:"id"`
	Token        string         `json:"token"`
	UserID       *string        `json:"user_id,omitempty"` // nil: anonymous
	Values       map[string]any `json:"values"`
	CreatedAt    time.Time      `json:"created_at"`
	LastActiveAt time.Time      `json:"last_active_at"`
	ExpiresAt    time.Time      `json:"expires_at"`

	dirty bool
	isNew bool
}

// New returns a new, dirty session.
func New(id, token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Token:        token,
		Values:       make(map[string]any),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		dirty:        true,
		isNew:        true,
	}
}

// IsAuthenticated reports whether a user is attached to the session.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != nil && *s.UserID != ""
}

// SetValue stores val under key and marks the session dirty.
func (s *Session) SetValue(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
	s.dirty = true
}

func (s *Session) GetValue(key string) (any, bool) {
	val, ok := s.Values[key]
	return val, ok
}

// DeleteValue removes key, marking the session dirty only if it was present.
func (s *Session) DeleteValue(key string) {
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

func (s *Session) IsDirty() bool { return s.dirty }
func (s *Session) ClearDirty() { s.dirty = false }
func (s *Session) MarkDirty() { s.dirty = true }
func (s *Session) IsNew() bool { return s.isNew }
func (s *Session) ClearNew() { s.isNew = false }

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Value returns the value under key as T.
// Returns ErrNotFound for a nil session or missing key and ErrTypeMismatch
// when the stored value has another type.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}
	raw, ok := s.GetValue(key)
	if !ok {
		return zero, ErrNotFound
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T", ErrTypeMismatch, key, raw)
	}
	return v, nil
}

// ValueOr is Value with a fallback for any error.
func ValueOr[T any](s *Session, key string, fallback T) T {
	if v, err := Value[T](s, key); err == nil {
		return v
	}
	return fallback
}
