package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Source string   `json:"source"`
	Crops  []string `json:"crops"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "snapshot:all", snapshot{Source: "gov", Crops: []string{"Wheat"}}, time.Minute))

	var got snapshot
	require.NoError(t, mc.Get(ctx, "snapshot:all", &got))
	assert.Equal(t, "gov", got.Source)
	assert.Equal(t, []string{"Wheat"}, got.Crops)

	var missing snapshot
	assert.ErrorIs(t, mc.Get(ctx, "snapshot:other", &missing), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	require.NoError(t, mc.Set(ctx, "k", "v", time.Minute))
	var s string
	require.NoError(t, mc.Get(ctx, "k", &s))

	now = now.Add(2 * time.Minute)
	assert.ErrorIs(t, mc.Get(ctx, "k", &s), ErrCacheMiss)
	assert.Equal(t, 0, mc.Len())
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { now = now.Add(time.Second); return now }

	require.NoError(t, mc.Set(ctx, "a", 1, time.Hour))
	require.NoError(t, mc.Set(ctx, "b", 2, time.Hour))
	var v int
	require.NoError(t, mc.Get(ctx, "a", &v)) // touch a so b is oldest
	require.NoError(t, mc.Set(ctx, "c", 3, time.Hour))

	assert.Equal(t, 2, mc.Len())
	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "a", &v))
	assert.Equal(t, 1, v)
}

func TestLayeredCacheBackfillsL1(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemoryCache()
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l1, l2, 30*time.Second)
	defer lc.Close()

	require.NoError(t, l2.Set(ctx, "snapshot:all", snapshot{Source: "remote"}, time.Minute))

	var got snapshot
	require.NoError(t, lc.Get(ctx, "snapshot:all", &got))
	assert.Equal(t, "remote", got.Source)
	assert.Equal(t, 1, l1.Len())

	var missing snapshot
	assert.ErrorIs(t, lc.Get(ctx, "snapshot:state:goa", &missing), ErrCacheMiss)
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "snapshot:state:punjab", GenerateKeyWithParams("snapshot", "state", "  Punjab "))
	assert.Equal(t, "trend:rice:15", GenerateKeyWithParams("trend", "Rice", 15))
}
