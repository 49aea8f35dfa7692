package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stock_dashboard/internal/app/di"
	symboladapters "stock_dashboard/internal/feature/symbollist/adapters"
	"stock_dashboard/internal/feature/symbollist/usecase"
	"stock_dashboard/internal/platform/cache"
	platformdb "stock_dashboard/internal/platform/db"
	"stock_dashboard/internal/platform/logging"
	platformredis "stock_dashboard/internal/platform/redis"
)

const ingestTimeout = 5 * time.Minute

// ingest は IEX Cloud の銘柄一覧を PostgreSQL に同期し、銘柄キャッシュを無効化します。
func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	logging.SetupFromEnv()

	if err := run(); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}
	slog.Info("ingest ok")
}

func run() error {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	cfg := platformdb.LoadConfigFromEnv()
	cfg.RunMigrations = true
	db, err := platformdb.OpenDB(cfg)
	if err != nil {
		return err
	}

	upstream := di.NewIEXCloudClient()
	store := symboladapters.NewSymbolRepository(db)
	uc := usecase.NewSyncUsecase(upstream, store)

	n, err := uc.Sync(ctx)
	if err != nil {
		return err
	}
	slog.Info("symbols synced", "count", n)

	// DB を参照するサーバーの古いキャッシュを破棄
	rdb, err := platformredis.NewRedisClient(platformredis.LoadConfig())
	if err != nil {
		slog.Warn("Redis unavailable. Skipping cache invalidation.", "error", err)
		return nil
	}
	defer func() { _ = rdb.Close() }()

	c := cache.NewCachingSymbolSource(rdb, nil, store, "symbols:"+string(di.SourceDB))
	if err := c.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate symbol cache", "error", err)
	}
	return nil
}
