// Package cache holds the per-session role cache consulted by the role
// attachment middleware, so a session resolves its authoritative role from
// the store once instead of on every request.
package cache

import (
	"context"
	"sync"
	"time"
)

type RoleCache interface {
	Get(ctx context.Context, accountID string) (string, bool)
	Set(ctx context.Context, accountID, role string)
}

type memoryEntry struct {
	role      string
	expiresAt time.Time
}

// MemoryRoleCache is the default backend when Redis is not configured.
type MemoryRoleCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryRoleCache(ttl time.Duration) *MemoryRoleCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MemoryRoleCache{
		entries: map[string]memoryEntry{},
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryRoleCache) Get(_ context.Context, accountID string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[accountID]
	c.mu.RUnlock()
	if !ok || c.now().After(e.expiresAt) {
		return "", false
	}
	return e.role, true
}

func (c *MemoryRoleCache) Set(_ context.Context, accountID, role string) {
	c.mu.Lock()
	c.entries[accountID] = memoryEntry{role: role, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}
