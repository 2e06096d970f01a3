package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tuanis-rp/roleplay-api/internal/common"
)

// Redis implements Cache over a go-redis client. The client is constructed
// once per process and dials lazily on first use; it is safe for concurrent
// callers.
type Redis struct {
	rdb *goredis.Client
}

var _ Cache = (*Redis)(nil)

func NewRedis(addr string, db int) *Redis {
	return &Redis{rdb: goredis.NewClient(&goredis.Options{Addr: addr, DB: db})}
}

func (c *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: redis get: %v", common.ErrorUnavailable, err)
	}
	return v, nil
}

func (c *Redis) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", common.ErrorUnavailable, err)
	}
	return nil
}

// Delete removes the given keys. Deleting zero keys, or keys that do not
// exist, is a no-op.
func (c *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %v", common.ErrorUnavailable, err)
	}
	return nil
}

// Keys enumerates keys matching a glob pattern.
func (c *Redis) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: redis keys: %v", common.ErrorUnavailable, err)
	}
	return keys, nil
}

func (c *Redis) Close() error {
	if err := c.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
