// Package config は通知サービスの設定を環境変数から読み込む。
//
// カレントディレクトリに .env があれば先に読み込み、その後
// 環境変数を Config 構造体にマッピングする。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config は通知サービスの実行時設定。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `env:"PORT" envDefault:"8086"`
	// DatabasePath はSQLiteデータベースファイルのパス。
	DatabasePath string `env:"DATABASE_PATH" envDefault:"/data/notification.db"`
	// JWTSecret はJWT検証に使用するシークレット。
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-key"`
	// EventStoreURL はEvent StoreのベースURL。空の場合はイベント送信を行わない。
	EventStoreURL string `env:"EVENTSTORE_URL"`
	// OccupantServiceURL は入居者サービスのベースURL。空の場合はローカルDBを参照する。
	OccupantServiceURL string `env:"OCCUPANT_SERVICE_URL"`
	// Timezone は期限判定で日付の境界に使うタイムゾーン名。
	Timezone string `env:"FEED_TIMEZONE" envDefault:"Local"`
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	// RateLimit はIP単位のレート制限（例: "300-M"）。
	RateLimit string `env:"RATE_LIMIT" envDefault:"300-M"`
	// LogLevel はlogrusのログレベル。
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFormat はログの出力形式（text / json）。
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load は .env と環境変数から設定を読み込む。
// .env が存在しない場合は環境変数のみを使用する。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".envの読み込みに失敗: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗: %w", err)
	}
	return &cfg, nil
}

// LoadFrom は与えられた環境変数マップから設定を読み込む。
func LoadFrom(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("環境変数の解析に失敗: %w", err)
	}
	return &cfg, nil
}

// Location は FEED_TIMEZONE に対応するタイムゾーンを返す。
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("タイムゾーン %q の読み込みに失敗: %w", c.Timezone, err)
	}
	return loc, nil
}
