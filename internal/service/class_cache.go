package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tatamihq/tatami-backend/internal/config"
	"github.com/tatamihq/tatami-backend/internal/model"
)

// RedisClassCache caches class definitions in Redis with a TTL. Cache
// failures are logged and treated as misses; Postgres stays authoritative.
type RedisClassCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRedisClassCache creates a new RedisClassCache.
func NewRedisClassCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisClassCache {
	return &RedisClassCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "class_cache").Logger(),
	}
}

// Get returns the cached class definition if present.
func (c *RedisClassCache) Get(ctx context.Context, classID int) (*model.Class, bool) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.ClassDefinitionKey(classID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Int("class_id", classID).Msg("Cache read failed")
		}
		return nil, false
	}

	var class model.Class
	if err := json.Unmarshal([]byte(raw), &class); err != nil {
		c.log.Warn().Err(err).Int("class_id", classID).Msg("Cache entry corrupt, ignoring")
		return nil, false
	}
	return &class, true
}

// Set stores a class definition with the configured TTL.
func (c *RedisClassCache) Set(ctx context.Context, class *model.Class) {
	raw, err := json.Marshal(class)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, config.CacheKey.ClassDefinitionKey(class.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Int("class_id", class.ID).Msg("Cache write failed")
	}
}
