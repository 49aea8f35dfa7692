// Package cache provides caching implementations for symbol sources.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/feature/symbollist/usecase"
)

// DefaultTTL is used when no TTL function is given.
const DefaultTTL = 5 * time.Minute

// DefaultFetchTimeout bounds a shared upstream fetch.
const DefaultFetchTimeout = 30 * time.Second

// CachingSymbolSource decorates a SymbolSource with Redis caching.
// Concurrent misses share a single upstream request.
type CachingSymbolSource struct {
	inner     usecase.SymbolSource
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
	group     singleflight.Group

	fetchTimeout time.Duration
}

// NewCachingSymbolSource decorates a SymbolSource with Redis caching.
// If ttl is nil, entries live for DefaultTTL. If namespace is empty, it uses "symbols".
// A nil rdb disables caching but still coalesces concurrent requests.
func NewCachingSymbolSource(rdb *redis.Client, ttl func() time.Duration, inner usecase.SymbolSource, namespace string) *CachingSymbolSource {
	if ttl == nil {
		ttl = func() time.Duration { return DefaultTTL }
	}
	if namespace == "" {
		namespace = "symbols"
	}
	return &CachingSymbolSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,

		fetchTimeout: DefaultFetchTimeout,
	}
}

// ListAll returns the full symbol set, checking the cache first.
func (c *CachingSymbolSource) ListAll(ctx context.Context) ([]entity.Symbol, error) {
	key := c.cacheKey()

	if c.rdb != nil {
		if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
			var out []entity.Symbol
			if err := json.Unmarshal(b, &out); err == nil {
				return out, nil
			}
			// 破損したキャッシュは削除
			_ = c.rdb.Del(ctx, key).Err()
		}
	}

	// 共有の取得は呼び出し元のキャンセルから切り離す
	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		out, err := c.inner.ListAll(fctx)
		if err != nil {
			return nil, err
		}
		c.store(fctx, key, out)
		return out, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		slog.Debug("shared symbol fetch", "key", key)
	}
	// 呼び出し元ごとに独立したスライスを返す
	return append([]entity.Symbol(nil), res.Val.([]entity.Symbol)...), nil
}

// Invalidate removes every cached entry in the namespace.
func (c *CachingSymbolSource) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

// store writes symbols to the cache (best effort).
func (c *CachingSymbolSource) store(ctx context.Context, key string, symbols []entity.Symbol) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(symbols)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl()).Err(); err != nil {
		slog.Warn("failed to cache symbols", "key", key, "error", err)
	}
}

func (c *CachingSymbolSource) cacheKey() string {
	return c.namespace + ":all"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingSymbolSource) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
