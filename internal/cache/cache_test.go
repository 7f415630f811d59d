package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"toolshare-admin/internal/domain"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	_, ok := c.Get(ctx, "r1")
	assert.False(t, ok)

	c.Set(ctx, "r1", domain.RentalStatusDisputeOpened)
	c.Set(ctx, "r2", "")

	st, ok := c.Get(ctx, "r1")
	assert.True(t, ok)
	assert.Equal(t, domain.RentalStatusDisputeOpened, st)

	st, ok = c.Get(ctx, "r2")
	assert.True(t, ok)
	assert.Empty(t, st)

	now = now.Add(time.Minute)
	_, ok = c.Get(ctx, "r1")
	assert.False(t, ok, "stale entries must read as unknown")
}

func TestRedisCache_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	c := NewRedisCache(rdb, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "r1", domain.RentalStatusDisputeOpened)
	_, ok := c.Get(ctx, "r1")
	assert.False(t, ok)
}
