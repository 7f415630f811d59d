// Package cache keeps the last observed status of rentals linked to deposit
// reports so the dispute queue does not refetch every rental on each load.
package cache

import (
	"context"
	"sync"
	"time"

	"toolshare-admin/internal/domain"
)

// RentalStatusCache stores rental statuses by rental id. An empty status
// records a rental that could not be fetched.
type RentalStatusCache interface {
	Get(ctx context.Context, rentalID string) (domain.RentalStatus, bool)
	Set(ctx context.Context, rentalID string, status domain.RentalStatus)
}

type memoryEntry struct {
	status  domain.RentalStatus
	expires time.Time
}

// MemoryCache is an in-process RentalStatusCache. Entries older than the TTL
// read as unknown.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, rentalID string) (domain.RentalStatus, bool) {
	c.mu.RLock()
	e, ok := c.entries[rentalID]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expires) {
		return "", false
	}
	return e.status, true
}

func (c *MemoryCache) Set(_ context.Context, rentalID string, status domain.RentalStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[rentalID] = memoryEntry{status: status, expires: c.now().Add(c.ttl)}
}
