package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient spins up a miniredis server and returns a client plus cleanup.
func newTestClient(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}
	return client, cleanup
}

func TestStore_GetMissing(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	store := NewWithClient(client, "greenkit:")
	_, ok, err := store.Get(context.Background(), "user:alice:xp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SetGet(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	store := NewWithClient(client, "greenkit:")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user:alice:points", "850"))
	v, ok, err := store.Get(ctx, "user:alice:points")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "850", v)

	// keys live under the configured prefix
	raw, err := client.Get(ctx, "greenkit:user:alice:points").Result()
	require.NoError(t, err)
	assert.Equal(t, "850", raw)
}

func TestStore_Overwrite(t *testing.T) {
	client, cleanup := newTestClient(t)
	defer cleanup()

	store := NewWithClient(client, "")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user:bob:rewards", `[]`))
	require.NoError(t, store.Set(ctx, "user:bob:rewards", `["mem-1","mem-2"]`))
	v, ok, err := store.Get(ctx, "user:bob:rewards")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["mem-1","mem-2"]`, v)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "localhost:6379", cfg.Addr)
	assert.Equal(t, "greenkit:", cfg.KeyPrefix)
	assert.Positive(t, cfg.PoolSize)
}
