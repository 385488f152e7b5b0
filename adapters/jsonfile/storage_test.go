package jsonfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "greenkit.json")
	ctx := context.Background()

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "user:alice:xp", "550"))
	require.NoError(t, s.Set(ctx, "user:alice:rewards", `["mem-1"]`))

	// a fresh store over the same file sees the data
	reloaded, err := New(path)
	require.NoError(t, err)
	v, ok, err := reloaded.Get(ctx, "user:alice:xp")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "550", v)

	v, ok, err = reloaded.Get(ctx, "user:alice:rewards")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["mem-1"]`, v)
}

func TestMissingKey(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "kv.json"))
	require.NoError(t, err)
	_, ok, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOverwrite(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "kv.json"))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", "1"))
	require.NoError(t, s.Set(ctx, "k", "2"))
	v, _, _ := s.Get(ctx, "k")
	assert.Equal(t, "2", v)
}
