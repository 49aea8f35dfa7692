// Package redis はキャッシュ用のRedisクライアントを生成します。
package redis

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrDisabled is returned when REDIS_HOST is not set.
var ErrDisabled = errors.New("redis is not configured")

const pingTimeout = 3 * time.Second

// Config holds Redis connection settings.
type Config struct {
	Host     string
	Port     string
	Password string
}

// Addr returns host:port, defaulting the port to 6379.
func (c Config) Addr() string {
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return net.JoinHostPort(c.Host, port)
}

// LoadConfig は環境変数からRedisの接続設定を読み込みます。
func LoadConfig() Config {
	return Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

// NewRedisClient は接続確認済みのクライアントを返します。
// Hostが空の場合はErrDisabledを返し、呼び出し側はキャッシュなしで動作します。
func NewRedisClient(cfg Config) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, ErrDisabled
	}
	addr := cfg.Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
