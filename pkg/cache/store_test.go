package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	a := Key("explain", "Go", "Channels ")
	b := Key("explain", "go", "channels")
	c := Key("resources", "go", "channels")
	d := Key("explain", "goc", "hannels")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", "explanation", time.Minute))
	val, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "explanation", val)
	assert.True(t, mr.Exists("learnpath:k"))

	mr.FastForward(2 * time.Minute)
	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore("redis://" + addr)
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", 0))
	val, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", val)

	require.NoError(t, store.Set(ctx, "short", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, found, _ = store.Get(ctx, "short")
	assert.False(t, found)
}
