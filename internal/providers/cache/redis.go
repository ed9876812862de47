package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sandevgo/saori/internal/core"
	"github.com/sandevgo/saori/pkg/log"
)

const keyPrefix = "saori:reply:"

// RedisCache shares replies between instances. Redis errors are logged and
// reported as misses; the pipeline never fails because of the cache.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.MaxRetries = -1
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = time.Second
	opts.WriteTimeout = time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (core.Reply, bool) {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return core.Reply{}, false
	}
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("redis cache get failed")
		return core.Reply{}, false
	}

	var reply core.Reply
	if err := json.Unmarshal(raw, &reply); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("key", key).Msg("corrupt cached reply")
		return core.Reply{}, false
	}
	return reply, true
}

func (c *RedisCache) Set(ctx context.Context, key string, reply core.Reply) {
	raw, err := json.Marshal(reply)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to encode reply for cache")
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("redis cache set failed")
	}
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
