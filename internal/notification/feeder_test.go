package notification

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFeed(ids ...string) FeedFunc {
	return func(_ context.Context, _ string) ([]Notification, error) {
		notifications := make([]Notification, 0, len(ids))
		for _, id := range ids {
			notifications = append(notifications, Notification{ID: id})
		}
		return notifications, nil
	}
}

func ids(notifications []Notification) []string {
	result := make([]string, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, n.ID)
	}
	return result
}

func TestRegistryRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("登録順に結果を連結すること", func(t *testing.T) {
		t.Parallel()

		logger, _ := test.NewNullLogger()
		r := NewRegistry(logger).
			Register("first", staticFeed("a", "b")).
			Register("second", staticFeed("c"))

		assert.Equal(t, []string{"a", "b", "c"}, ids(r.Run(ctx, "realm-1")))
		assert.Equal(t, []string{"first", "second"}, r.Names())
		assert.Equal(t, 2, r.Len())
	})

	t.Run("フィーダーにはレルムが渡されること", func(t *testing.T) {
		t.Parallel()

		var got string
		r := NewRegistry(nil).Register("capture", func(_ context.Context, realm string) ([]Notification, error) {
			got = realm
			return nil, nil
		})
		r.Run(ctx, "realm-42")
		assert.Equal(t, "realm-42", got)
	})

	t.Run("失敗したフィーダーは0件として扱い警告を記録すること", func(t *testing.T) {
		t.Parallel()

		logger, hook := test.NewNullLogger()
		r := NewRegistry(logger).
			Register("ok1", staticFeed("a")).
			Register("broken", func(_ context.Context, _ string) ([]Notification, error) {
				return []Notification{{ID: "partial"}}, errBoom
			}).
			Register("ok2", staticFeed("b"))

		assert.Equal(t, []string{"a", "b"}, ids(r.Run(ctx, "realm-1")))

		require.Len(t, hook.AllEntries(), 1)
		entry := hook.LastEntry()
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, "broken", entry.Data["feeder"])
		assert.Equal(t, "realm-1", entry.Data["realm"])
	})

	t.Run("パニックしたフィーダーも他の実行を妨げないこと", func(t *testing.T) {
		t.Parallel()

		logger, hook := test.NewNullLogger()
		r := NewRegistry(logger).
			Register("panics", func(_ context.Context, _ string) ([]Notification, error) {
				panic("unexpected")
			}).
			Register("ok", staticFeed("a"))

		assert.Equal(t, []string{"a"}, ids(r.Run(ctx, "realm-1")))
		require.Len(t, hook.AllEntries(), 1)
		assert.Equal(t, "panics", hook.LastEntry().Data["feeder"])
	})

	t.Run("フィーダーがない場合は空のスライスを返すこと", func(t *testing.T) {
		t.Parallel()

		got := NewRegistry(nil).Run(ctx, "realm-1")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("nilの関数を登録するとパニックすること", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			NewRegistry(nil).Register("nil", nil)
		})
	})
}
