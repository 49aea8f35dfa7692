package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	symboladapters "stock_dashboard/internal/feature/symbollist/adapters"
)

const (
	// DefaultConnectTimeout は起動時にDB接続を待つ最大時間です。
	DefaultConnectTimeout = 60 * time.Second
	retryInterval         = 3 * time.Second
)

// Config holds PostgreSQL connection settings.
type Config struct {
	URL           string // DATABASE_URL。設定されている場合は他の項目より優先
	User          string
	Password      string
	Name          string
	Host          string
	Port          string
	SSLMode       string
	InstanceName  string // Cloud SQL の接続名。設定時はUnixソケットで接続
	RunMigrations bool
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}
	return Config{
		URL:           os.Getenv("DATABASE_URL"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		Host:          os.Getenv("DB_HOST"),
		Port:          os.Getenv("DB_PORT"),
		SSLMode:       sslmode,
		InstanceName:  os.Getenv("INSTANCE_CONNECTION_NAME"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}
}

// BuildDSN は設定からPostgreSQLのDSN文字列を生成します。
// URL > Cloud SQL Unixソケット > TCP の順で優先します。
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// ValidateDSN parses dsn without connecting so a malformed value fails fast.
func ValidateDSN(dsn string) error {
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return fmt.Errorf("invalid database dsn: %w", err)
	}
	return nil
}

// ConnectWithRetry はtimeoutに達するまで一定間隔で接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate は銘柄テーブルのスキーマを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&symboladapters.SymbolModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// OpenDB はPostgreSQLに接続し、RunMigrationsが有効ならマイグレーションを実行します。
func OpenDB(cfg Config) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)
	if err := ValidateDSN(dsn); err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(dsn, DefaultConnectTimeout, openPostgres)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		slog.Info("database migrated")
	}
	return db, nil
}
