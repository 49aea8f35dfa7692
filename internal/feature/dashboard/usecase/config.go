package usecase

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"

	symbolusecase "stock_dashboard/internal/feature/symbollist/usecase"
)

// DefaultMaxScreens は同時にマウントできるダッシュボード数の既定値です。
const DefaultMaxScreens = 1000

// Config holds dashboard settings.
type Config struct {
	Locale     language.Tag              // 名前順の並び替えに使うロケール
	Load       symbolusecase.LoadOptions // 銘柄ロードのタイムアウトと再試行
	MaxScreens int                       // 同時マウント数の上限
}

// LoadConfig は環境変数からダッシュボードの設定を読み込みます。
// 不正な値は警告を出して既定値を使用します。
func LoadConfig() Config {
	cfg := Config{
		Locale: language.English,
		Load: symbolusecase.LoadOptions{
			Timeout:  symbolusecase.DefaultFetchTimeout,
			Attempts: symbolusecase.DefaultFetchAttempts,
		},
		MaxScreens: DefaultMaxScreens,
	}

	if v := os.Getenv("DASHBOARD_LOCALE"); v != "" {
		if tag, err := language.Parse(v); err == nil {
			cfg.Locale = tag
		} else {
			slog.Warn("invalid DASHBOARD_LOCALE, using default", "value", v, "error", err)
		}
	}
	if v := os.Getenv("SYMBOL_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Load.Timeout = d
		} else {
			slog.Warn("invalid SYMBOL_FETCH_TIMEOUT, using default", "value", v)
		}
	}
	if v := os.Getenv("SYMBOL_FETCH_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Load.Attempts = n
		} else {
			slog.Warn("invalid SYMBOL_FETCH_ATTEMPTS, using default", "value", v)
		}
	}
	if v := os.Getenv("MAX_DASHBOARDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxScreens = n
		} else {
			slog.Warn("invalid MAX_DASHBOARDS, using default", "value", v)
		}
	}
	return cfg
}
