// Package cache is a pass-through Redis response cache. It is a performance
// optimization only: every operation degrades to a no-op when the client is
// absent or Redis is unreachable.
package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/dharani18p/task-management-Web-App/pkg/logger"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps a Redis client. A nil client disables caching.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.ErrorLogger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key string, val []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		logger.ErrorLogger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.ErrorLogger.Error("Cache delete failed", zap.String("key", key), zap.Error(err))
	}
}
