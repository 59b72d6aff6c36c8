package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "url:"

// RedisCache shares resolution outcomes across instances. Backend errors
// are logged and treated as cache misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, shortKey string) (Resolution, bool) {
	payload, err := c.client.Get(ctx, redisKeyPrefix+shortKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis cache read failed", zap.String("short_key", shortKey), zap.Error(err))
		}
		return Resolution{}, false
	}

	var res Resolution
	if err := json.Unmarshal(payload, &res); err != nil {
		c.logger.Warn("redis cache entry is malformed", zap.String("short_key", shortKey), zap.Error(err))
		return Resolution{}, false
	}
	return res, true
}

func (c *RedisCache) Set(ctx context.Context, shortKey string, res Resolution) {
	payload, err := json.Marshal(res)
	if err != nil {
		c.logger.Warn("cannot encode cache entry", zap.String("short_key", shortKey), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, redisKeyPrefix+shortKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("redis cache write failed", zap.String("short_key", shortKey), zap.Error(err))
	}
}
