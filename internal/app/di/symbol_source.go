// Package di provides dependency injection factories for creating application components.
package di

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	symboladapters "stock_dashboard/internal/feature/symbollist/adapters"
	"stock_dashboard/internal/feature/symbollist/adapters/iexcloud"
	"stock_dashboard/internal/feature/symbollist/usecase"
	"stock_dashboard/internal/platform/cache"
	infrahttp "stock_dashboard/internal/platform/http"
	"stock_dashboard/internal/shared/ratelimiter"
)

// SourceKind selects where dashboards read symbols from.
type SourceKind string

const (
	SourceAPI SourceKind = "api" // IEX Cloud を直接参照
	SourceDB  SourceKind = "db"  // ingest が同期した PostgreSQL を参照

	defaultRefreshHour = 8
)

// ErrNoDatabase is returned when the db source is selected without a database.
var ErrNoDatabase = errors.New("symbol source db requires a database connection")

// SourceKindFromEnv は SYMBOL_SOURCE を読み込みます。未設定の場合は api です。
func SourceKindFromEnv() SourceKind {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("SYMBOL_SOURCE")))
	if v == "" {
		return SourceAPI
	}
	return SourceKind(v)
}

// RefreshHourFromEnv reads SYMBOL_CACHE_REFRESH_HOUR (0-23), defaulting to 8.
func RefreshHourFromEnv() int {
	v := os.Getenv("SYMBOL_CACHE_REFRESH_HOUR")
	if v == "" {
		return defaultRefreshHour
	}
	h, err := strconv.Atoi(v)
	if err != nil || h < 0 || h > 23 {
		slog.Warn("invalid SYMBOL_CACHE_REFRESH_HOUR, using default", "value", v)
		return defaultRefreshHour
	}
	return h
}

// NewIEXCloudClient creates a rate-limited IEX Cloud client.
func NewIEXCloudClient() *iexcloud.Client {
	cfg := iexcloud.LoadConfig()
	if cfg.APIKey == "" {
		slog.Warn("IEX_CLOUD_API_KEY is not set; symbol requests will be rejected upstream")
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
	return iexcloud.NewClient(cfg, httpClient, limiter)
}

// NewSymbolSource はkindに応じた銘柄ソースをRedisキャッシュでラップして返します。
// rdb が nil の場合はキャッシュなしで動作します。
func NewSymbolSource(kind SourceKind, db *gorm.DB, rdb *redis.Client) (*cache.CachingSymbolSource, error) {
	var inner usecase.SymbolSource
	switch kind {
	case SourceAPI:
		inner = NewIEXCloudClient()
	case SourceDB:
		if db == nil {
			return nil, ErrNoDatabase
		}
		inner = symboladapters.NewSymbolRepository(db)
	default:
		return nil, fmt.Errorf("unknown symbol source %q", kind)
	}

	ttl := cache.DailyTTL(RefreshHourFromEnv(), cache.DefaultRefreshLocation)
	return cache.NewCachingSymbolSource(rdb, ttl, inner, "symbols:"+string(kind)), nil
}
