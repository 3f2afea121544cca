// Package cache holds redis-backed read caches. Entries are best-effort:
// cache failures never fail the request that touched them.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/directory-service/internal/domain"
)

const businessKeyPrefix = "directory:business:"

// BusinessCache caches business detail reads.
type BusinessCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewBusinessCache builds the cache. A nil client disables caching.
func NewBusinessCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *BusinessCache {
	return &BusinessCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached business or nil on miss/error.
func (c *BusinessCache) Get(ctx context.Context, id uuid.UUID) *domain.Business {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, businessKeyPrefix+id.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("business cache get failed", zap.Error(err))
		}
		return nil
	}
	var business domain.Business
	if err := json.Unmarshal(raw, &business); err != nil {
		return nil
	}
	return &business
}

// Set stores the business detail for the configured TTL.
func (c *BusinessCache) Set(ctx context.Context, business *domain.Business) {
	if c == nil || c.client == nil || business == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(business)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, businessKeyPrefix+business.ID.String(), raw, c.ttl).Err(); err != nil {
		c.logger.Debug("business cache set failed", zap.Error(err))
	}
}

// Invalidate drops the cached entry after a write or aggregate refresh.
func (c *BusinessCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, businessKeyPrefix+id.String()).Err(); err != nil {
		c.logger.Debug("business cache invalidate failed", zap.Error(err))
	}
}
