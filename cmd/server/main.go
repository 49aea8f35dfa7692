package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/app/router"
	dashboardhandler "stock_dashboard/internal/feature/dashboard/transport/handler"
	dashboardusecase "stock_dashboard/internal/feature/dashboard/usecase"
	symbollisthandler "stock_dashboard/internal/feature/symbollist/transport/handler"
	symbollistusecase "stock_dashboard/internal/feature/symbollist/usecase"
	platformdb "stock_dashboard/internal/platform/db"
	platformhandler "stock_dashboard/internal/platform/http/handler"
	"stock_dashboard/internal/platform/logging"
	platformredis "stock_dashboard/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	logging.SetupFromEnv()

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kind := di.SourceKindFromEnv()

	// db は SYMBOL_SOURCE=db のときのみ接続
	var db *gorm.DB
	if kind == di.SourceDB {
		var err error
		if db, err = platformdb.OpenDB(platformdb.LoadConfigFromEnv()); err != nil {
			return err
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(platformredis.LoadConfig()); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Redisキャッシュでラップした銘柄ソース
	source, err := di.NewSymbolSource(kind, db, rdb)
	if err != nil {
		return err
	}
	slog.Info("symbol source configured", "source", kind)

	// Usecase
	cfg := dashboardusecase.LoadConfig()
	screens := dashboardusecase.NewScreens(source, cfg)
	defer screens.Close()
	pipeline := symbollistusecase.NewPipeline(cfg.Locale, symbollistusecase.InteractiveDisplayLimit)
	symbolUC := symbollistusecase.NewSymbolUsecase(source, pipeline)

	// Handler
	healthH := platformhandler.NewHealthHandler(screens)
	symbolH := symbollisthandler.NewSymbolHandler(symbolUC)
	dashboardH := dashboardhandler.NewDashboardHandler(screens)

	// ルータ生成
	r := router.NewRouter(healthH, symbolH, dashboardH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
