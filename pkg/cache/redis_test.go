package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, prefix string) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), prefix)
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func TestRedisCacheMissIsErrCacheMiss(t *testing.T) {
	rc, _ := newTestRedis(t, "cropadvisor")

	var got snapshot
	assert.ErrorIs(t, rc.Get(context.Background(), "snapshot:all", &got), ErrCacheMiss)
}

func TestRedisCacheRoundTripWithPrefix(t *testing.T) {
	rc, mr := newTestRedis(t, "cropadvisor")
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "snapshot:all", snapshot{Source: "gov", Crops: []string{"Wheat"}}, time.Minute))

	assert.True(t, mr.Exists("cropadvisor:snapshot:all"))
	assert.False(t, mr.Exists("snapshot:all"))

	var got snapshot
	require.NoError(t, rc.Get(ctx, "snapshot:all", &got))
	assert.Equal(t, snapshot{Source: "gov", Crops: []string{"Wheat"}}, got)
}

func TestRedisCacheWithoutPrefix(t *testing.T) {
	rc, mr := newTestRedis(t, "")

	require.NoError(t, rc.Set(context.Background(), "snapshot:all", snapshot{Source: "gov"}, time.Minute))
	assert.True(t, mr.Exists("snapshot:all"))
}

func TestRedisCacheExpiry(t *testing.T) {
	rc, mr := newTestRedis(t, "cropadvisor")
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "snapshot:state:punjab", snapshot{Source: "gov"}, 5*time.Minute))
	assert.Equal(t, 5*time.Minute, mr.TTL("cropadvisor:snapshot:state:punjab"))

	mr.FastForward(4 * time.Minute)
	var got snapshot
	require.NoError(t, rc.Get(ctx, "snapshot:state:punjab", &got))

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, rc.Get(ctx, "snapshot:state:punjab", &got), ErrCacheMiss)
}

func TestLayeredCacheOverRedis(t *testing.T) {
	rc, mr := newTestRedis(t, "cropadvisor")
	ctx := context.Background()
	lc := NewLayeredCache(NewMemoryCache(), rc, 30*time.Second)
	defer lc.mem.Close()

	require.NoError(t, lc.Set(ctx, "snapshot:all", snapshot{Source: "gov"}, 5*time.Minute))
	assert.Equal(t, 5*time.Minute, mr.TTL("cropadvisor:snapshot:all"))
	assert.Equal(t, 1, lc.mem.Len())

	var missing snapshot
	assert.ErrorIs(t, lc.Get(ctx, "snapshot:other", &missing), ErrCacheMiss)
}
