package sysconfig

import (
	"context"
	"time"

	platformredis "govassist/internal/platform/redis"
)

const cacheKeyPrefix = "sysconfig:"

// CachedProvider reads settings through a short-TTL Redis cache in front of
// the store. A nil Redis client degrades to store-only reads, and any cache
// or store failure falls through to ok=false so callers use compiled
// defaults. Configuration lookups never fail an evaluation.
type CachedProvider struct {
	store Store
	redis *platformredis.Client
	ttl   time.Duration
}

// NewCachedProvider constructs the production configuration provider.
func NewCachedProvider(store Store, redis *platformredis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{store: store, redis: redis, ttl: ttl}
}

// Value implements Provider.
func (p *CachedProvider) Value(ctx context.Context, key string) (string, bool) {
	if p.redis != nil {
		cached, err := p.redis.Get(ctx, cacheKeyPrefix+key).Result()
		if err == nil {
			return cached, true
		}
		// Cache misses and transport errors both fall through to the store.
	}

	setting, err := p.store.Get(ctx, key)
	if err != nil {
		return "", false
	}

	if p.redis != nil {
		_ = p.redis.Set(ctx, cacheKeyPrefix+key, setting.Value, p.ttl).Err()
	}
	return setting.Value, true
}

// Invalidate drops the cached entry for key after an update.
func (p *CachedProvider) Invalidate(ctx context.Context, key string) {
	if p.redis != nil {
		_ = p.redis.Del(ctx, cacheKeyPrefix+key).Err()
	}
}
