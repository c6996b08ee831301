package preference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/session"
)

// Request is the part of a request context the store reads and writes.
type Request interface {
	Context() context.Context
	Query(name string) string
	Header(name string) string
	Cookie(name string) (string, error)
	UserID() string
	SessionValue(key string) (any, error)
	SetSessionValue(key string, val any) error
	InitSession() error
}

// Store reads preference signals from requests and persists resolved choices.
type Store struct {
	profiles      Profiles
	logger        *slog.Logger
	startSessions bool
}

// Option configures a Store.
type Option func(*Store)

// WithProfiles enables the user-profile source and locale persistence.
func WithProfiles(p Profiles) Option {
	return func(s *Store) { s.profiles = p }
}

// WithLogger sets the logger used for profile read failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithoutSessionStart makes Write skip requests that have no session
// instead of starting one.
func WithoutSessionStart() Option {
	return func(s *Store) { s.startSessions = false }
}

// NewStore returns a Store. Without WithProfiles the profile source is never present.
func NewStore(opts ...Option) *Store {
	s := &Store{logger: logger.NewNope(), startSessions: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadSignal reads a single source. SourceDefault is never present.
func (s *Store) ReadSignal(req Request, kind Kind, source Source) (string, bool) {
	return s.read(req, kind, source, s.profileOnce(req))
}

// Read returns the present signals for kind in priority order.
func (s *Store) Read(req Request, kind Kind) []Signal {
	return s.collect(req, kind, s.profileOnce(req))
}

// ReadAll returns the signals for both kinds, loading the user profile once.
func (s *Store) ReadAll(req Request) Signals {
	profile := s.profileOnce(req)
	return Signals{
		Locale:   s.collect(req, KindLocale, profile),
		Currency: s.collect(req, KindCurrency, profile),
	}
}

// Write stores code in the session under the kind's key. For currencies a
// non-zero id is stored under "currency_id". Unchanged values are not written.
// A request without a session gets one unless WithoutSessionStart is set;
// an app without sessions is a no-op.
func (s *Store) Write(req Request, kind Kind, code string, id int64) error {
	key := sessionKey(kind)
	if current, err := req.SessionValue(key); err == nil && current == code && idStored(req, kind, id) {
		return nil
	}

	err := req.SetSessionValue(key, code)
	if errors.Is(err, session.ErrNotFound) && s.startSessions {
		if err = req.InitSession(); err == nil {
			err = req.SetSessionValue(key, code)
		}
	}
	switch {
	case errors.Is(err, session.ErrNotConfigured):
		return nil
	case errors.Is(err, session.ErrNotFound) && !s.startSessions:
		return nil
	case err != nil:
		return fmt.Errorf("%w: %s: %w", ErrPersist, kind, err)
	}

	if kind == KindCurrency && id != 0 {
		if err := req.SetSessionValue(CurrencyIDKey, id); err != nil {
			return fmt.Errorf("%w: %s id: %w", ErrPersist, kind, err)
		}
	}
	return nil
}

// idStored reports whether the session already holds id for kind.
// Only currencies carry an id.
func idStored(req Request, kind Kind, id int64) bool {
	if kind != KindCurrency || id == 0 {
		return true
	}
	v, err := req.SessionValue(CurrencyIDKey)
	if err != nil {
		return false
	}
	switch n := v.(type) {
	case int64:
		return n == id
	case int:
		return int64(n) == id
	case float64:
		return n == float64(id)
	}
	return false
}

// SavePreferredLocale stores code on the signed-in user's profile.
func (s *Store) SavePreferredLocale(req Request, code string) error {
	uid := req.UserID()
	if uid == "" {
		return ErrAnonymous
	}
	if s.profiles == nil {
		return ErrNoProfiles
	}
	if err := s.profiles.SetPreferredLocale(req.Context(), uid, code); err != nil {
		return fmt.Errorf("%w: profile: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) collect(req Request, kind Kind, profile func() (Profile, bool)) []Signal {
	sources := Priority[kind]
	out := make([]Signal, 0, len(sources))
	for rank, src := range sources {
		if code, ok := s.read(req, kind, src, profile); ok {
			out = append(out, Signal{Kind: kind, Source: src, Code: code, Rank: rank})
		}
	}
	return out
}

func (s *Store) read(req Request, kind Kind, source Source, profile func() (Profile, bool)) (string, bool) {
	var code string

	switch source {
	case SourceQuery:
		code = req.Query(queryParam(kind))
	case SourceCookie:
		code, _ = req.Cookie(sessionKey(kind))
	case SourceSession:
		v, err := req.SessionValue(sessionKey(kind))
		if err != nil {
			return "", false
		}
		code, _ = v.(string)
	case SourceProfile:
		p, ok := profile()
		if !ok {
			return "", false
		}
		code = deref(p.Preferred(kind))
	case SourceHeader:
		if kind != KindLocale {
			return "", false
		}
		code = AcceptLanguagePrefix(req.Header("Accept-Language"))
	default:
		return "", false
	}

	code = strings.TrimSpace(code)
	return code, code != ""
}

// profileOnce returns a loader that fetches the user's profile at most once.
func (s *Store) profileOnce(req Request) func() (Profile, bool) {
	var (
		loaded bool
		p      Profile
		ok     bool
	)
	return func() (Profile, bool) {
		if loaded {
			return p, ok
		}
		loaded = true

		uid := req.UserID()
		if uid == "" || s.profiles == nil {
			return p, ok
		}

		var err error
		p, err = s.profiles.Profile(req.Context(), uid)
		switch {
		case err == nil:
			ok = true
		case !errors.Is(err, ErrProfileNotFound):
			s.logger.WarnContext(req.Context(), "failed to load user preferences",
				slog.String("user_id", uid),
				slog.Any("error", err),
			)
		}
		return p, ok
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
