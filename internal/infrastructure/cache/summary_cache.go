package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/pkg/logger"
)

// SummaryCache keeps unified summary responses in Redis for a short TTL so the
// overview dashboard does not fan out to every branch on every refresh.
// A nil client disables the cache; every Redis failure is treated as a miss.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewSummaryCache builds the cache. client may be nil when Redis is not
// configured.
func NewSummaryCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl, log: log}
}

// NewRedisClient connects to Redis from a URL, returning nil when url is empty.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Get returns the cached summary for key, or nil on miss.
func (c *SummaryCache) Get(ctx context.Context, key string) *dto.UnifiedSummaryView {
	if c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, c.fullKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("summary cache read failed")
		}
		return nil
	}
	var view dto.UnifiedSummaryView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("summary cache entry corrupt")
		return nil
	}
	return &view
}

// Set stores the summary under key for the configured TTL.
func (c *SummaryCache) Set(ctx context.Context, key string, view *dto.UnifiedSummaryView) {
	if c.client == nil || view == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("summary cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("summary cache write failed")
	}
}

// Invalidate drops every cached summary. Called after ledger writes so
// dashboards never show stale totals for longer than one request.
func (c *SummaryCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, c.fullKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", iter.Val()).Msg("summary cache invalidate failed")
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Msg("summary cache scan failed")
	}
}

func (c *SummaryCache) fullKey(key string) string {
	return "summary:" + key
}
