package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/session"
)

func TestSession_Values(t *testing.T) {
	t.Parallel()

	sess := session.New("id", "token", time.Now().Add(time.Hour))
	assert.True(t, sess.IsNew())
	assert.True(t, sess.IsDirty())
	sess.ClearDirty()

	sess.SetValue("locale", "ar")
	assert.True(t, sess.IsDirty())

	got, err := session.Value[string](sess, "locale")
	require.NoError(t, err)
	assert.Equal(t, "ar", got)

	_, err = session.Value[int](sess, "locale")
	require.ErrorIs(t, err, session.ErrTypeMismatch)

	_, err = session.Value[string](sess, "missing")
	require.ErrorIs(t, err, session.ErrNotFound)

	_, err = session.Value[string](nil, "locale")
	require.ErrorIs(t, err, session.ErrNotFound)

	assert.Equal(t, "USD", session.ValueOr(sess, "currency", "USD"))

	sess.ClearDirty()
	sess.DeleteValue("missing")
	assert.False(t, sess.IsDirty())
	sess.DeleteValue("locale")
	assert.True(t, sess.IsDirty())
}

func TestSession_IsAuthenticated(t *testing.T) {
	t.Parallel()

	sess := session.New("id", "token", time.Now().Add(time.Hour))
	assert.False(t, sess.IsAuthenticated())

	empty := ""
	sess.UserID = &empty
	assert.False(t, sess.IsAuthenticated())

	uid := "4b1f5b9e-1111-4c4c-9d9d-123456789abc"
	sess.UserID = &uid
	assert.True(t, sess.IsAuthenticated())
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()

	sess := session.New("id-1", "tok-1", time.Now().Add(time.Hour))
	sess.SetValue("locale", "en")
	require.NoError(t, store.Create(ctx, sess))

	loaded, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "en", loaded.Values["locale"])
	assert.False(t, loaded.IsDirty())

	loaded.SetValue("locale", "ar")
	again, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "en", again.Values["locale"], "stored copy must not alias caller maps")

	require.NoError(t, store.Update(ctx, loaded))
	again, err = store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "ar", again.Values["locale"])

	require.NoError(t, store.Delete(ctx, "tok-1"))
	_, err = store.Get(ctx, "tok-1")
	require.ErrorIs(t, err, session.ErrNotFound)

	expired := session.New("id-2", "tok-2", time.Now().Add(-time.Minute))
	require.NoError(t, store.Create(ctx, expired))
	_, err = store.Get(ctx, "tok-2")
	require.ErrorIs(t, err, session.ErrExpired)
}
