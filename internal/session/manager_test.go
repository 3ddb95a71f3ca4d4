package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ramadhanarif/storefront-client/pkg/enums"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	manager, err := NewManager(store, testLogger())
	require.NoError(t, err)
	return manager
}

func TestFileStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	snapshot := &Snapshot{
		Token: "tok-1",
		User:  User{ID: "u-1", Username: "budi", Role: enums.UserRoleCustomer},
	}
	require.NoError(t, store.Save(snapshot))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, *snapshot, *loaded)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestManagerSetAndClear(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	assert.False(t, manager.IsLoggedIn())
	assert.Empty(t, manager.Token())

	require.NoError(t, manager.Set(ctx, Snapshot{
		Token: "tok-2",
		User:  User{ID: "u-2", Role: enums.UserRoleAdmin},
	}))
	assert.True(t, manager.IsLoggedIn())
	assert.True(t, manager.IsAdmin())
	assert.Equal(t, "tok-2", manager.Token())

	require.NoError(t, manager.Clear(ctx))
	assert.False(t, manager.IsLoggedIn())
}

func TestInvalidateNotifiesSubscribersOnce(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, manager.Set(ctx, Snapshot{Token: "tok-3", User: User{ID: "u-3"}}))

	calls := 0
	unsubscribe := manager.SubscribeUnauthorized(func() { calls++ })
	defer unsubscribe()

	manager.Invalidate(ctx)
	manager.Invalidate(ctx) // already logged out, must not re-notify

	assert.Equal(t, 1, calls)
	assert.False(t, manager.IsLoggedIn())
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, manager.Set(ctx, Snapshot{Token: "tok-4", User: User{ID: "u-4"}}))

	calls := 0
	unsubscribe := manager.SubscribeUnauthorized(func() { calls++ })
	unsubscribe()

	manager.Invalidate(ctx)
	assert.Zero(t, calls)
}

func TestTokenExpired(t *testing.T) {
	manager := newTestManager(t)
	ctx := context.Background()

	assert.True(t, manager.TokenExpired(time.Now()), "logged out counts as expired")

	mint := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)
		return signed
	}

	require.NoError(t, manager.Set(ctx, Snapshot{Token: mint(time.Now().Add(time.Hour)), User: User{ID: "u"}}))
	assert.False(t, manager.TokenExpired(time.Now()))

	require.NoError(t, manager.Set(ctx, Snapshot{Token: mint(time.Now().Add(-time.Hour)), User: User{ID: "u"}}))
	assert.True(t, manager.TokenExpired(time.Now()))
}
