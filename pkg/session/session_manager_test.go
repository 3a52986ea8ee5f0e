package session

import (
	"context"
	"testing"
	"time"

	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/storage"
	"github.com/abisalde/povertyline-client/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.UserSummary {
	return &model.UserSummary{ID: 7, Name: "Ada", Email: "a@b.com", Role: model.RoleProvider, Status: model.UserStatusActive}
}

func TestSessionManager_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	sm := NewSessionManager(store)

	token, user, err := sm.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)

	require.NoError(t, sm.Save(ctx, "opaque-token", testUser()))

	token, user, err = sm.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", token)
	assert.Equal(t, testUser(), user)
	assert.True(t, sm.HasRole(ctx, model.RoleProvider))
	assert.False(t, sm.HasRole(ctx, model.RoleAdmin))

	require.NoError(t, sm.Clear(ctx))
	_, err = store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Get(ctx, UserKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSessionManager_SaveRequiresBoth(t *testing.T) {
	sm := NewSessionManager(storage.NewMemoryStorage())

	assert.Error(t, sm.Save(context.Background(), "", testUser()))
	assert.Error(t, sm.Save(context.Background(), "token", nil))
}

func TestSessionManager_ExpiredTokenClearsSession(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	sm := NewSessionManager(store)

	issuer, err := jwt.NewIssuer("secret")
	require.NoError(t, err)
	expired, err := issuer.GenerateToken(7, "provider", jwt.TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	require.NoError(t, sm.Save(ctx, expired, testUser()))

	token, err := sm.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	user, err := sm.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSessionManager_HalfSessionIsCleared(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	sm := NewSessionManager(store)

	require.NoError(t, store.SetMany(ctx, map[string]string{TokenKey: "orphan"}))

	token, user, err := sm.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)

	_, err = store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSessionManager_RefreshUser(t *testing.T) {
	ctx := context.Background()
	sm := NewSessionManager(storage.NewMemoryStorage())

	assert.Error(t, sm.RefreshUser(ctx, testUser()))

	require.NoError(t, sm.Save(ctx, "tok", testUser()))
	updated := testUser()
	updated.Name = "Ada Lovelace"
	require.NoError(t, sm.RefreshUser(ctx, updated))

	token, user, err := sm.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "Ada Lovelace", user.Name)
}
