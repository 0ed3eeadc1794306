package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotCacheKey = "estoque:snapshot"

// SnapshotCache stores the last stock snapshot. Implementations are best effort:
// callers log errors and fall back to the store.
type SnapshotCache interface {
	Get(ctx context.Context) (map[string]int, bool, error)
	Set(ctx context.Context, snap map[string]int) error
	Invalidate(ctx context.Context) error
}

type redisSnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSnapshotCache returns a Redis-backed cache, or a no-op cache when rdb is nil.
func NewSnapshotCache(rdb *redis.Client, ttl time.Duration) SnapshotCache {
	if rdb == nil {
		return noopSnapshotCache{}
	}
	return &redisSnapshotCache{rdb: rdb, ttl: ttl}
}

func (c *redisSnapshotCache) Get(ctx context.Context) (map[string]int, bool, error) {
	raw, err := c.rdb.Get(ctx, snapshotCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var snap map[string]int
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

func (c *redisSnapshotCache) Set(ctx context.Context, snap map[string]int) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, snapshotCacheKey, b, c.ttl).Err()
}

func (c *redisSnapshotCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, snapshotCacheKey).Err()
}

type noopSnapshotCache struct{}

func (noopSnapshotCache) Get(context.Context) (map[string]int, bool, error) { return nil, false, nil }
func (noopSnapshotCache) Set(context.Context, map[string]int) error         { return nil }
func (noopSnapshotCache) Invalidate(context.Context) error                  { return nil }
