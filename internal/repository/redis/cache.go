package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a JSON read-through cache. A nil *Cache is valid and caches nothing.
type Cache struct {
	rdb   *redis.Client
	loads singleflight.Group
}

func New(client *redis.Client) *Cache {
	return &Cache{rdb: client}
}

// lookup decodes the value at key into dst and reports whether it was there.
func (c *Cache) lookup(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) store(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, string(b), ttl).Err()
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// GetOrSetJSON returns the cached value for key, or loads, stores and returns
// it. Concurrent misses on one key share a single load. Cache failures fall
// through to the loader.
func GetOrSetJSON[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	loader func(ctx context.Context) (T, error),
) (T, error) {
	if c == nil {
		return loader(ctx)
	}

	var v T
	if hit, err := c.lookup(ctx, key, &v); err == nil && hit {
		return v, nil
	}

	shared, err, _ := c.loads.Do(key, func() (any, error) {
		var again T
		if hit, err := c.lookup(ctx, key, &again); err == nil && hit {
			return again, nil
		}

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		_ = c.store(ctx, key, loaded, ttl)
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	out, ok := shared.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("redisrepo.GetOrSetJSON: cached %T for %s", shared, key)
	}
	return out, nil
}

// InvalidateEvent drops every cached view that embeds the event.
func (c *Cache) InvalidateEvent(ctx context.Context, eventID string) error {
	return c.Del(ctx, KeyEventDetail(eventID), KeyEventList())
}
