// Package querycache caches retrieval results in a key-value store, saving a
// provider round trip for repeated questions.
package querycache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/elijah-alonzo/ai-poc/internal/db"
	"github.com/elijah-alonzo/ai-poc/internal/domain"
)

const cacheKeyPrefix = "aipoc:query_cache:"

// store is the consumer interface for the query cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// querier is the inner index querier being decorated.
type querier interface {
	Query(ctx context.Context, query string, topK int) ([]domain.RetrievedChunk, error)
}

// CachedQuerier caches retrieval results in a key-value store.
type CachedQuerier struct {
	inner      querier
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner querier,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedQuerier {
	return &CachedQuerier{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Query returns cached results or calls the inner querier.
// Cache failures are logged and ignored; they never affect the result.
func (c *CachedQuerier) Query(ctx context.Context, query string, topK int) ([]domain.RetrievedChunk, error) {
	key := c.cacheKey(query, topK)

	if results, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return results, nil
	}

	c.incCache("miss")

	results, err := c.inner.Query(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	c.putToCache(ctx, key, results)
	return results, nil
}

func (c *CachedQuerier) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedQuerier) cacheKey(query string, topK int) string {
	h := sha256.Sum256([]byte(strconv.Itoa(topK) + "|" + query))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedQuerier) getFromCache(ctx context.Context, key string) ([]domain.RetrievedChunk, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached results", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var results []domain.RetrievedChunk
	if err := json.Unmarshal(data, &results); err != nil {
		c.logger.Warn("Failed to parse cached results", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return results, true
}

func (c *CachedQuerier) putToCache(ctx context.Context, key string, results []domain.RetrievedChunk) {
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("Failed to encode results for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache results", zap.String("key", key), zap.Error(err))
	}
}
