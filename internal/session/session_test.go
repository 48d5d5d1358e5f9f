package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/goccy/go-json"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ride-hail-client/internal/common/logger"
	"ride-hail-client/internal/domain/user"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	store, err := OpenInMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter("test", io.Discard)
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwtlib.MapClaims{"sub": "42", "role": "rider"}
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestLoginPersistsUnderRoleNamespace(t *testing.T) {
	store := newTestStore(t)
	sess := New(user.RoleRider, store, testLogger())

	u := user.User{ID: 42, Email: "r@example.com", Role: user.RoleRider}
	require.NoError(t, sess.Login("tok-123", u))

	assert.True(t, sess.Authenticated())
	assert.Equal(t, "tok-123", sess.Token())

	raw, ok, err := store.Get("auth-storage-rider-token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-123", raw)

	_, ok, err = store.Get("auth-storage-driver-token")
	require.NoError(t, err)
	assert.False(t, ok, "rider login must not touch the driver namespace")
}

func TestLoginRequiresTokenAndUser(t *testing.T) {
	sess := New(user.RoleRider, newTestStore(t), testLogger())

	assert.ErrorIs(t, sess.Login("", user.User{ID: 1}), ErrMissingToken)
	assert.ErrorIs(t, sess.Login("tok", user.User{}), ErrMissingUser)
	assert.False(t, sess.Authenticated())
}

func TestRoleNamespacesAreIsolated(t *testing.T) {
	store := newTestStore(t)
	rider := New(user.RoleRider, store, testLogger())
	driver := New(user.RoleDriver, store, testLogger())

	require.NoError(t, rider.Login("rider-tok", user.User{ID: 1, Role: user.RoleRider}))
	require.NoError(t, driver.Login("driver-tok", user.User{ID: 2, Role: user.RoleDriver}))

	require.NoError(t, rider.Logout())

	assert.False(t, rider.Authenticated())
	assert.True(t, driver.Authenticated())
	assert.Equal(t, "driver-tok", driver.Token())
}

func TestInitFromStorageRestoresSession(t *testing.T) {
	store := newTestStore(t)
	first := New(user.RoleRider, store, testLogger())
	require.NoError(t, first.Login("tok", user.User{ID: 7, Role: user.RoleRider, Email: "x@example.com"}))

	restored := New(user.RoleRider, store, testLogger())
	restored.InitFromStorage(context.Background())

	assert.True(t, restored.Authenticated())
	u, ok := restored.User()
	require.True(t, ok)
	assert.Equal(t, int64(7), u.ID)
}

func TestInitFromStorageIgnoresEmptyStore(t *testing.T) {
	sess := New(user.RoleRider, newTestStore(t), testLogger())
	sess.InitFromStorage(context.Background())
	assert.False(t, sess.Authenticated())
}

func TestInitFromStoragePurgesCorruptUser(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("auth-storage-rider-token", "tok"))
	require.NoError(t, store.Set("auth-storage-rider-user", "{not json"))

	sess := New(user.RoleRider, store, testLogger())
	sess.InitFromStorage(context.Background())

	assert.False(t, sess.Authenticated())
	_, ok, err := store.Get("auth-storage-rider-user")
	require.NoError(t, err)
	assert.False(t, ok, "corrupt record must be cleared")
	_, ok, err = store.Get("auth-storage-rider-token")
	require.NoError(t, err)
	assert.False(t, ok, "token must be cleared with the corrupt record")
}

func TestInitFromStoragePurgesRoleMismatch(t *testing.T) {
	store := newTestStore(t)
	raw, err := json.Marshal(user.User{ID: 9, Role: user.RoleDriver})
	require.NoError(t, err)
	require.NoError(t, store.Set("auth-storage-rider-token", "tok"))
	require.NoError(t, store.Set("auth-storage-rider-user", string(raw)))

	sess := New(user.RoleRider, store, testLogger())
	sess.InitFromStorage(context.Background())

	assert.False(t, sess.Authenticated())
	_, ok, err := store.Get("auth-storage-rider-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInitFromStorageKeepsExpiredToken(t *testing.T) {
	// An expired token is restored anyway; the server rejects it and the 401
	// policy takes over from there.
	store := newTestStore(t)
	tok := signedToken(t, time.Now().Add(-time.Hour))
	first := New(user.RoleRider, store, testLogger())
	require.NoError(t, first.Login(tok, user.User{ID: 3, Role: user.RoleRider}))

	restored := New(user.RoleRider, store, testLogger())
	restored.InitFromStorage(context.Background())
	assert.True(t, restored.Authenticated())
}

func TestPurgeCredentials(t *testing.T) {
	store := newTestStore(t)
	sess := New(user.RoleRider, store, testLogger())
	require.NoError(t, sess.Login("tok", user.User{ID: 5, Role: user.RoleRider}))

	require.NoError(t, sess.PurgeCredentials())

	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Token())
	_, ok := sess.User()
	assert.False(t, ok)
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	info, err := InspectToken(signedToken(t, exp))
	require.NoError(t, err)
	assert.Equal(t, "42", info.Subject)
	assert.Equal(t, "rider", info.Role)
	assert.Equal(t, exp.Unix(), info.ExpiresAt.Unix())
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Second)))

	_, err = InspectToken("garbage")
	assert.Error(t, err)
}
