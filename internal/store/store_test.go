package store

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/rentwatch/pkg/logging"
)

// openTestDB はマイグレーション適用済みのインメモリSQLiteを開く。
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := Open(context.Background(), ":memory:", logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
