package preference_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/preference"
)

const userID = "9f0c6a5e-2d1b-4c43-8f7e-0b1a2c3d4e5f"

func ptr(s string) *string { return &s }

type countingProfiles struct {
	preference.Profiles
	calls atomic.Int32
}

func (c *countingProfiles) Profile(ctx context.Context, id string) (preference.Profile, error) {
	c.calls.Add(1)
	return c.Profiles.Profile(ctx, id)
}

func codes(signals []preference.Signal) []string {
	out := make([]string, len(signals))
	for i, s := range signals {
		out[i] = s.Source.String() + "=" + s.Code
	}
	return out
}

func TestStore_Read_LocalePriority(t *testing.T) {
	t.Parallel()

	profiles := preference.NewMemoryProfiles(preference.Profile{UserID: userID, PreferredLocale: ptr("fr")})
	store := preference.NewStore(preference.WithProfiles(profiles))

	req := newRequest()
	req.query["lang"] = "ar"
	req.cookies["locale"] = "de"
	req.userID = userID
	req.sess = map[string]any{"locale": "es"}
	req.headers["Accept-Language"] = "it-IT,it;q=0.9,en;q=0.5"

	got := store.Read(req, preference.KindLocale)
	assert.Equal(t, []string{"query=ar", "cookie=de", "profile=fr", "session=es", "header=it"}, codes(got))
	for i, s := range got {
		assert.Equal(t, i, s.Rank)
		assert.Equal(t, preference.KindLocale, s.Kind)
	}
}

func TestStore_Read_CurrencyPriority(t *testing.T) {
	t.Parallel()

	profiles := preference.NewMemoryProfiles(preference.Profile{UserID: userID, PreferredCurrency: ptr("GBP")})
	store := preference.NewStore(preference.WithProfiles(profiles))

	req := newRequest()
	req.query["currency"] = "EUR"
	req.cookies["currency"] = "JPY"
	req.userID = userID
	req.sess = map[string]any{"currency": "USD"}
	req.headers["Accept-Language"] = "ar"

	got := store.Read(req, preference.KindCurrency)
	assert.Equal(t, []string{"query=EUR", "cookie=JPY", "session=USD", "profile=GBP"}, codes(got))
}

func TestStore_Read_Absent(t *testing.T) {
	t.Parallel()

	store := preference.NewStore()

	t.Run("nothing present", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, store.Read(newRequest(), preference.KindLocale))
		assert.Empty(t, store.Read(newRequest(), preference.KindCurrency))
	})

	t.Run("blank values are absent", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.query["lang"] = "   "
		req.sess = map[string]any{"locale": ""}
		req.headers["Accept-Language"] = "*"
		assert.Empty(t, store.Read(req, preference.KindLocale))
	})

	t.Run("non string session value is absent", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.sess = map[string]any{"currency": 42.0}
		assert.Empty(t, store.Read(req, preference.KindCurrency))
	})

	t.Run("profile source needs a user and a profile store", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.userID = userID
		_, ok := store.ReadSignal(req, preference.KindLocale, preference.SourceProfile)
		assert.False(t, ok)
	})

	t.Run("user without stored preference", func(t *testing.T) {
		t.Parallel()
		s := preference.NewStore(preference.WithProfiles(preference.NewMemoryProfiles(preference.Profile{UserID: userID})))
		req := newRequest()
		req.userID = userID
		_, ok := s.ReadSignal(req, preference.KindLocale, preference.SourceProfile)
		assert.False(t, ok)
	})

	t.Run("default is never read", func(t *testing.T) {
		t.Parallel()
		_, ok := store.ReadSignal(newRequest(), preference.KindLocale, preference.SourceDefault)
		assert.False(t, ok)
	})
}

func TestStore_ReadAll_LoadsProfileOnce(t *testing.T) {
	t.Parallel()

	profiles := &countingProfiles{Profiles: preference.NewMemoryProfiles(preference.Profile{
		UserID:            userID,
		PreferredLocale:   ptr("ar"),
		PreferredCurrency: ptr("EUR"),
	})}
	store := preference.NewStore(preference.WithProfiles(profiles))

	req := newRequest()
	req.userID = userID

	all := store.ReadAll(req)
	assert.Equal(t, []string{"profile=ar"}, codes(all.Locale))
	assert.Equal(t, []string{"profile=EUR"}, codes(all.Currency))
	assert.Equal(t, int32(1), profiles.calls.Load())
}

func TestStore_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes into existing session", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.sess = map[string]any{}

		store := preference.NewStore()
		require.NoError(t, store.Write(req, preference.KindLocale, "ar", 2))
		require.NoError(t, store.Write(req, preference.KindCurrency, "EUR", 7))

		assert.Equal(t, "ar", req.sess["locale"])
		assert.Equal(t, "EUR", req.sess["currency"])
		assert.Equal(t, int64(7), req.sess["currency_id"])
		_, hasLocaleID := req.sess["locale_id"]
		assert.False(t, hasLocaleID)
	})

	t.Run("starts a session when missing", func(t *testing.T) {
		t.Parallel()
		req := newRequest()

		require.NoError(t, preference.NewStore().Write(req, preference.KindLocale, "en", 0))
		assert.Equal(t, 1, req.inits)
		assert.Equal(t, "en", req.sess["locale"])
	})

	t.Run("skips missing session when session start is disabled", func(t *testing.T) {
		t.Parallel()
		req := newRequest()

		require.NoError(t, preference.NewStore(preference.WithoutSessionStart()).Write(req, preference.KindLocale, "en", 0))
		assert.Zero(t, req.inits)
		assert.Nil(t, req.sess)
	})

	t.Run("unchanged value is not rewritten", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.sess = map[string]any{"locale": "ar"}
		req.setErr = errStoreDown

		require.NoError(t, preference.NewStore().Write(req, preference.KindLocale, "ar", 0))
	})

	t.Run("unchanged currency code with a new id rewrites the id", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.sess = map[string]any{"currency": "EUR", "currency_id": int64(7)}

		require.NoError(t, preference.NewStore().Write(req, preference.KindCurrency, "EUR", 9))
		assert.Equal(t, "EUR", req.sess["currency"])
		assert.Equal(t, int64(9), req.sess["currency_id"])
	})

	t.Run("unchanged currency code and id is not rewritten", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.sess = map[string]any{"currency": "EUR", "currency_id": float64(7)}
		req.setErr = errStoreDown

		require.NoError(t, preference.NewStore().Write(req, preference.KindCurrency, "EUR", 7))
	})

	t.Run("sessions not configured", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.noSessions = true

		require.NoError(t, preference.NewStore().Write(req, preference.KindCurrency, "USD", 1))
	})

	t.Run("write failure is reported", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.sess = map[string]any{}
		req.setErr = errStoreDown

		err := preference.NewStore().Write(req, preference.KindCurrency, "USD", 1)
		require.ErrorIs(t, err, preference.ErrPersist)
		require.ErrorIs(t, err, errStoreDown)
	})
}

func TestStore_SavePreferredLocale(t *testing.T) {
	t.Parallel()

	t.Run("updates profile", func(t *testing.T) {
		t.Parallel()
		profiles := preference.NewMemoryProfiles(preference.Profile{UserID: userID})
		store := preference.NewStore(preference.WithProfiles(profiles))

		req := newRequest()
		req.userID = userID
		require.NoError(t, store.SavePreferredLocale(req, "ar"))

		p, err := profiles.Profile(context.Background(), userID)
		require.NoError(t, err)
		require.NotNil(t, p.PreferredLocale)
		assert.Equal(t, "ar", *p.PreferredLocale)
	})

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		store := preference.NewStore(preference.WithProfiles(preference.NewMemoryProfiles()))
		require.ErrorIs(t, store.SavePreferredLocale(newRequest(), "ar"), preference.ErrAnonymous)
	})

	t.Run("no profile store", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.userID = userID
		require.ErrorIs(t, preference.NewStore().SavePreferredLocale(req, "ar"), preference.ErrNoProfiles)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		req := newRequest()
		req.userID = userID
		store := preference.NewStore(preference.WithProfiles(preference.NewMemoryProfiles()))
		err := store.SavePreferredLocale(req, "ar")
		require.ErrorIs(t, err, preference.ErrPersist)
		require.ErrorIs(t, err, preference.ErrProfileNotFound)
	})
}

func TestAcceptLanguagePrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"ar-EG,en;q=0.8": "ar",
		"EN":             "en",
		"fr;q=0.9, en":   "fr",
		" de-CH ":        "de",
		"*":              "",
		"":               "",
		"e":              "",
		"1x-foo":         "",
	}
	for header, want := range tests {
		assert.Equal(t, want, preference.AcceptLanguagePrefix(header), header)
	}
}
