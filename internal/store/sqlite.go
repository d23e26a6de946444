package store

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/nao1215/rentwatch/pkg/migration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// timeLayout はTEXT列に保存する日時の形式。
const timeLayout = time.RFC3339Nano

// Open はSQLiteデータベースを開き、未適用のマイグレーションを適用する。
// dsnには ":memory:" も指定できる。
func Open(ctx context.Context, dsn string, logger logrus.FieldLogger) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// SQLiteは書き込みが直列化されるため接続を1本に絞る
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s の実行に失敗: %w", pragma, err)
		}
	}

	if err := migration.Run(ctx, db.DB, migrationsFS, "migrations", logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return db, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timeLayout)
	return &s
}

func parseTime(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("日時 %q の解析に失敗: %w", *s, err)
	}
	return &t, nil
}
