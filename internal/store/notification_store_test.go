package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/rentwatch/internal/notification"
)

// TestNotificationStore は通知履歴の永続化を検証する。
func TestNotificationStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first := notification.Change{
		Date:   time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
		Email:  "manager@example.com",
		Status: "resolved",
	}
	second := notification.Change{
		Date:   time.Date(2024, 1, 11, 9, 30, 0, 0, time.UTC),
		Email:  "owner@example.com",
		Status: "closed",
	}

	t.Run("存在しない履歴はnilが返ること", func(t *testing.T) {
		t.Parallel()

		s := NewNotificationStore(openTestDB(t))
		rec, err := s.FindOne(ctx, "realm-1", "missing")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("保存した履歴を取得できること", func(t *testing.T) {
		t.Parallel()

		s := NewNotificationStore(openTestDB(t))
		require.NoError(t, s.Upsert(ctx, "realm-1", notification.Record{ID: "n-1", Changes: []notification.Change{first}}))

		rec, err := s.FindOne(ctx, "realm-1", "n-1")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "n-1", rec.ID)
		require.Len(t, rec.Changes, 1)
		assert.True(t, rec.Changes[0].Date.Equal(first.Date))
		assert.Equal(t, "resolved", rec.Changes[0].Status)
		assert.Equal(t, "manager@example.com", rec.Changes[0].Email)
	})

	t.Run("同じキーで保存すると履歴が置き換わること", func(t *testing.T) {
		t.Parallel()

		s := NewNotificationStore(openTestDB(t))
		require.NoError(t, s.Upsert(ctx, "realm-1", notification.Record{ID: "n-1", Changes: []notification.Change{first}}))
		require.NoError(t, s.Upsert(ctx, "realm-1", notification.Record{ID: "n-1", Changes: []notification.Change{first, second}}))

		records, err := s.FindAll(ctx, "realm-1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Len(t, records[0].Changes, 2)
		assert.Equal(t, "resolved", records[0].Changes[0].Status)
		assert.Equal(t, "closed", records[0].Changes[1].Status)
	})

	t.Run("一覧はレルム単位で分離されること", func(t *testing.T) {
		t.Parallel()

		s := NewNotificationStore(openTestDB(t))
		require.NoError(t, s.Upsert(ctx, "realm-1", notification.Record{ID: "b", Changes: []notification.Change{first}}))
		require.NoError(t, s.Upsert(ctx, "realm-1", notification.Record{ID: "a", Changes: []notification.Change{second}}))
		require.NoError(t, s.Upsert(ctx, "realm-2", notification.Record{ID: "c", Changes: []notification.Change{first}}))

		records, err := s.FindAll(ctx, "realm-1")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "a", records[0].ID)
		assert.Equal(t, "b", records[1].ID)

		rec, err := s.FindOne(ctx, "realm-2", "a")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("履歴がnilでも空配列として保存されること", func(t *testing.T) {
		t.Parallel()

		s := NewNotificationStore(openTestDB(t))
		require.NoError(t, s.Upsert(ctx, "realm-1", notification.Record{ID: "empty"}))

		rec, err := s.FindOne(ctx, "realm-1", "empty")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Empty(t, rec.Changes)
	})
}
