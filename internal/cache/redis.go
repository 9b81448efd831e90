package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRoleCache shares the role cache across instances. Misses and Redis
// errors both fall through to the store lookup, so a flaky Redis degrades
// to uncached behavior rather than failing requests.
type RedisRoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRoleCache(client *redis.Client, ttl time.Duration) *RedisRoleCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisRoleCache{client: client, ttl: ttl}
}

func (c *RedisRoleCache) Get(ctx context.Context, accountID string) (string, bool) {
	role, err := c.client.Get(ctx, c.key(accountID)).Result()
	if err != nil {
		return "", false
	}
	return role, role != ""
}

func (c *RedisRoleCache) Set(ctx context.Context, accountID, role string) {
	if err := c.client.Set(ctx, c.key(accountID), role, c.ttl).Err(); err != nil {
		log.Printf("cache: set role for %s: %v", accountID, err)
	}
}

func (c *RedisRoleCache) key(accountID string) string {
	return "session:role:" + accountID
}
