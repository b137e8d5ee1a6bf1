package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	_, err := kv.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "a", "1", 0))
	val, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "1", val)

	require.NoError(t, kv.Delete(ctx, "a"))
	_, err = kv.Get(ctx, "a")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemoryKVTTLExpiry(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	require.NoError(t, kv.Set(ctx, "short", "x", 10*time.Millisecond))
	val, err := kv.Get(ctx, "short")
	require.NoError(t, err)
	require.Equal(t, "x", val)

	time.Sleep(20 * time.Millisecond)
	_, err = kv.Get(ctx, "short")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemoryKVScanKeysByPrefix(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	require.NoError(t, kv.Set(ctx, "query:users:1", "a", 0))
	require.NoError(t, kv.Set(ctx, "query:users:2", "b", 0))
	require.NoError(t, kv.Set(ctx, "query:devices", "c", 0))

	keys, err := kv.ScanKeys(ctx, "query:users*")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"query:users:1", "query:users:2"}, keys)

	all, err := kv.ScanKeys(ctx, "query:*")
	require.NoError(t, err)
	require.Len(t, all, 3)
}
