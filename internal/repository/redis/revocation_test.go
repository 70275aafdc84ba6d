package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*RevocationStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRevocationStore(client, ttl), mr
}

func TestRevocationStore_RevokeAndCheck(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1"))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevocationStore_Revoke_Idempotent(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1"))
	require.NoError(t, store.Revoke(ctx, "jti-1"))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevocationStore_EntriesExpire(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1"))

	// Past the TTL the key self-prunes: no token carrying the jti can still
	// be valid, so the entry is no longer needed.
	mr.FastForward(2 * time.Minute)

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_KeysAreScoped(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-1"))
	assert.True(t, mr.Exists("revoked:jti-1"))

	revoked, err := store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_GenerationStartsAtZero(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	gen, err := store.Generation(context.Background(), "gideon")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)
}

func TestRevocationStore_RevokeAllForUser_AdvancesGeneration(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.RevokeAllForUser(ctx, "gideon"))
	gen, err := store.Generation(ctx, "gideon")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	require.NoError(t, store.RevokeAllForUser(ctx, "gideon"))
	gen, err = store.Generation(ctx, "gideon")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	// Other subjects are untouched.
	gen, err = store.Generation(ctx, "njeri")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)
}

func TestRevocationStore_GenerationExpires(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.RevokeAllForUser(ctx, "gideon"))

	// Past the TTL every token minted under an older generation has expired
	// on its own, so the counter can reset.
	mr.FastForward(2 * time.Minute)

	gen, err := store.Generation(ctx, "gideon")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)
}

func TestRevocationStore_StoreDown(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	mr.Close()

	err := store.Revoke(ctx, "jti-1")
	assert.Error(t, err)

	_, err = store.IsRevoked(ctx, "jti-1")
	assert.Error(t, err)

	err = store.RevokeAllForUser(ctx, "gideon")
	assert.Error(t, err)

	_, err = store.Generation(ctx, "gideon")
	assert.Error(t, err)
}
