package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowRefills(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	l := New()
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1", 2, 1))
	assert.True(t, l.Allow("10.0.0.1", 2, 1))
	assert.False(t, l.Allow("10.0.0.1", 2, 1))
	assert.True(t, l.Allow("10.0.0.2", 2, 1), "buckets are per key")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1", 2, 1))
	assert.False(t, l.Allow("10.0.0.1", 2, 1))
}

func TestSweepDropsIdleBuckets(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	l := New()
	l.now = func() time.Time { return now }

	l.Allow("a", 1, 1)
	now = now.Add(2 * idleTTL)
	l.Allow("b", 1, 1)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.m, "a")
	assert.Contains(t, l.m, "b")
}
