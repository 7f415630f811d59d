package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"toolshare-admin/internal/domain"
	"toolshare-admin/internal/logger"
)

const redisKeyPrefix = "toolshare:rental_status:"

// RedisCache shares rental statuses between the API server and the job
// runner. Redis errors degrade to cache misses.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient builds the client used by NewRedisCache.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *RedisCache) Get(ctx context.Context, rentalID string) (domain.RentalStatus, bool) {
	val, err := c.rdb.Get(ctx, redisKeyPrefix+rentalID).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		logger.ExternalServiceResult("redis", "GET", err, "rentalID", rentalID)
		return "", false
	}
	return domain.RentalStatus(val), true
}

func (c *RedisCache) Set(ctx context.Context, rentalID string, status domain.RentalStatus) {
	if err := c.rdb.Set(ctx, redisKeyPrefix+rentalID, string(status), c.ttl).Err(); err != nil {
		logger.ExternalServiceResult("redis", "SET", err, "rentalID", rentalID)
	}
}
