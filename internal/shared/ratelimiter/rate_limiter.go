// Package ratelimiter は外部API呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiterは、interval あたり limit 回までに操作の頻度を制限します。
// トークンバケットで実装しており、複数のゴルーチンから安全に使用できます。
type RateLimiter struct {
	lim      *rate.Limiter
	limit    int           // interval あたりの上限
	interval time.Duration // 上限を数える単位
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	lim := rate.NewLimiter(rate.Inf, 0)
	if limit > 0 && interval > 0 {
		lim = rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit)
	}
	return &RateLimiter{lim: lim, limit: limit, interval: interval}
}

// Waitは枠が空くまで待機します。
// 待機中にコンテキストが終了した場合はそのエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.lim.Limit() != rate.Inf && rl.lim.Tokens() < 1 {
		slog.Info("rate limit reached, waiting", "limit", rl.limit, "interval", rl.interval)
	}
	return rl.lim.Wait(ctx)
}
