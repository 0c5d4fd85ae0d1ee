// Package rediscache caches the ranked app snapshot between catalog
// reads. It is strictly best-effort: every failure is reported to the
// caller as a miss and the catalog falls through to the store. It is
// never consulted when discovery runs, and it is invalidated after
// every catalog mutation.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flarehq/flare/internal/domain"
)

const (
	// KeyPrefixApps is the prefix for cached app snapshots.
	KeyPrefixApps = "flare:apps:"

	// DefaultTTL bounds staleness when invalidation is missed
	// (e.g. a second flare instance sharing the database).
	DefaultTTL = 30 * time.Second
)

// AppsKey returns the redis key of the snapshot ranked under policy.
func AppsKey(policy domain.OrderingPolicy) string {
	return KeyPrefixApps + string(policy)
}

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// GetApps returns the cached snapshot for policy, or (nil, nil) on a
// miss.
func (c *Cache) GetApps(ctx context.Context, policy domain.OrderingPolicy) ([]*domain.App, error) {
	data, err := c.client.Get(ctx, AppsKey(policy)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, fmt.Errorf("failed to get cached apps: %w", err)
	}

	var apps []*domain.App
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached apps: %w", err)
	}
	return apps, nil
}

// SetApps stores the ranked snapshot for policy.
func (c *Cache) SetApps(ctx context.Context, policy domain.OrderingPolicy, apps []*domain.App) error {
	data, err := json.Marshal(apps)
	if err != nil {
		return fmt.Errorf("failed to marshal apps: %w", err)
	}
	if err := c.client.Set(ctx, AppsKey(policy), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache apps: %w", err)
	}
	return nil
}

// Invalidate drops every cached snapshot. Called after any catalog
// mutation (CRUD, reorder, reconciliation).
func (c *Cache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, KeyPrefixApps+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}
