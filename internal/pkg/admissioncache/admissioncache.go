package admissioncache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache holds the per-event admitted-ticket count read by operator
// dashboards. It is best-effort: misses and redis failures fall back
// to the ledger count query.
type Cache interface {
	GetCount(ctx context.Context, eventID string) (int64, bool)
	SetCount(ctx context.Context, eventID string, count int64)
	InvalidateCount(ctx context.Context, eventID string)
}

type redisCache struct {
	logger     *logrus.Logger
	client     *redis.Client
	expiration time.Duration
}

func NewRedisCache(logger *logrus.Logger, client *redis.Client) Cache {
	return &redisCache{
		logger:     logger,
		client:     client,
		expiration: 5 * time.Minute,
	}
}

func countKey(eventID string) string {
	return fmt.Sprintf("tm-scan:admitted-count:%s", eventID)
}

// GetCount implements Cache.
func (c *redisCache) GetCount(ctx context.Context, eventID string) (int64, bool) {
	count, err := c.client.Get(ctx, countKey(eventID)).Int64()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithContext(ctx).WithError(err).Error()
		}
		return 0, false
	}

	return count, true
}

// SetCount implements Cache.
func (c *redisCache) SetCount(ctx context.Context, eventID string, count int64) {
	if err := c.client.Set(ctx, countKey(eventID), count, c.expiration).Err(); err != nil {
		c.logger.WithContext(ctx).WithError(err).Error()
	}
}

// InvalidateCount implements Cache.
func (c *redisCache) InvalidateCount(ctx context.Context, eventID string) {
	if err := c.client.Del(ctx, countKey(eventID)).Err(); err != nil {
		c.logger.WithContext(ctx).WithError(err).Error()
	}
}
