package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores results in Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects a client to addr. The connection is verified
// lazily; callers that want a startup check can Ping.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Ping verifies the connection.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the client.
func (r *RedisCache) Close() error { return r.client.Close() }
