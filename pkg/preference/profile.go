package preference

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/storefront/pkg/db"
)

// Profile holds the preferences stored on a user account.
// Nil fields mean the user never chose one.
type Profile struct {
	UserID            string
	PreferredLocale   *string
	PreferredCurrency *string
}

// Preferred returns the stored preference for kind.
func (p Profile) Preferred(kind Kind) *string {
	if kind == KindCurrency {
		return p.PreferredCurrency
	}
	return p.PreferredLocale
}

// Profiles loads and updates user preference fields.
type Profiles interface {
	// Profile returns ErrProfileNotFound for unknown users.
	Profile(ctx context.Context, userID string) (Profile, error)
	SetPreferredLocale(ctx context.Context, userID, code string) error
}

// MemoryProfiles is an in-process Profiles implementation.
type MemoryProfiles struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryProfiles(profiles ...Profile) *MemoryProfiles {
	m := &MemoryProfiles{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		m.profiles[p.UserID] = p
	}
	return m
}

func (m *MemoryProfiles) Profile(_ context.Context, userID string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func (m *MemoryProfiles) SetPreferredLocale(_ context.Context, userID, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}
	p.PreferredLocale = &code
	m.profiles[userID] = p
	return nil
}

// PostgresProfiles reads preference columns of the users table.
type PostgresProfiles struct {
	db db.Querier
}

func NewPostgresProfiles(q db.Querier) *PostgresProfiles {
	return &PostgresProfiles{db: q}
}

func (p *PostgresProfiles) Profile(ctx context.Context, userID string) (Profile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return Profile{}, ErrProfileNotFound
	}

	prof := Profile{UserID: id.String()}
	err = p.db.QueryRow(ctx,
		`SELECT preferred_locale, preferred_currency FROM users WHERE id = $1`, id,
	).Scan(&prof.PreferredLocale, &prof.PreferredCurrency)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("preference: load profile: %w", err)
	}
	return prof, nil
}

func (p *PostgresProfiles) SetPreferredLocale(ctx context.Context, userID, code string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return ErrProfileNotFound
	}

	tag, err := p.db.Exec(ctx,
		`UPDATE users SET preferred_locale = $2, preferences_updated_at = now() WHERE id = $1`,
		id, code)
	if err != nil {
		return fmt.Errorf("preference: update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

var (
	_ Profiles = (*MemoryProfiles)(nil)
	_ Profiles = (*PostgresProfiles)(nil)
)
