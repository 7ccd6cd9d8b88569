package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Nithin8919/AI-policy-ASSISTANT--v2-sub002/internal/core/domain"
)

const defaultTTL = 15 * time.Minute

// RetrievalCache stores full retrieval responses keyed by
// sha256(mode|query). Cache trouble is logged and swallowed: a broken
// cache degrades to a miss, never to a failed query.
type RetrievalCache struct {
	client    *goredis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *slog.Logger
}

func NewRetrievalCache(client *goredis.Client, ttl time.Duration, logger *slog.Logger) *RetrievalCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetrievalCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: "retrieval:query:",
		logger:    logger,
	}
}

func (c *RetrievalCache) cacheKey(mode domain.QueryMode, query string) string {
	hash := sha256.Sum256([]byte(string(mode) + "|" + query))
	return c.keyPrefix + hex.EncodeToString(hash[:])
}

func (c *RetrievalCache) Get(ctx context.Context, mode domain.QueryMode, query string) (*domain.RetrievalResponse, bool) {
	if c.client == nil {
		return nil, false
	}

	key := c.cacheKey(mode, query)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("cache_get_failed", "error", err)
		}
		return nil, false
	}

	var resp domain.RetrievalResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("cache_entry_corrupt", "error", err)
		_ = c.client.Del(ctx, key).Err()
		return nil, false
	}
	return &resp, true
}

func (c *RetrievalCache) Set(ctx context.Context, mode domain.QueryMode, query string, resp *domain.RetrievalResponse) {
	if c.client == nil || resp == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("cache_marshal_failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, c.cacheKey(mode, query), data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache_set_failed", "error", err)
	}
}
