package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nao1215/rentwatch/internal/notification"
)

// NotificationStore は通知のワークフロー履歴をSQLiteに保存する。
type NotificationStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewNotificationStore は新しいNotificationStoreを生成する。
func NewNotificationStore(db *sqlx.DB) *NotificationStore {
	return &NotificationStore{db: db, now: time.Now}
}

// historyRow はnotification_historiesテーブルの1行。
type historyRow struct {
	Realm     string `db:"realm"`
	ID        string `db:"id"`
	Changes   string `db:"changes"`
	UpdatedAt string `db:"updated_at"`
}

func (r historyRow) record() (notification.Record, error) {
	var changes []notification.Change
	if err := json.Unmarshal([]byte(r.Changes), &changes); err != nil {
		return notification.Record{}, fmt.Errorf("通知 %s の履歴の解析に失敗: %w", r.ID, err)
	}
	return notification.Record{ID: r.ID, Changes: changes}, nil
}

// FindAll はレルムのすべての履歴をID順に返す。
func (s *NotificationStore) FindAll(ctx context.Context, realm string) ([]notification.Record, error) {
	var rows []historyRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT realm, id, changes, updated_at FROM notification_histories WHERE realm = ? ORDER BY id`, realm)
	if err != nil {
		return nil, fmt.Errorf("通知履歴一覧の取得に失敗: %w", err)
	}

	records := make([]notification.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// FindOne は履歴を1件返す。存在しない場合は nil, nil を返す。
func (s *NotificationStore) FindOne(ctx context.Context, realm, id string) (*notification.Record, error) {
	var row historyRow
	err := s.db.GetContext(ctx, &row,
		`SELECT realm, id, changes, updated_at FROM notification_histories WHERE realm = ? AND id = ?`, realm, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("通知履歴の取得に失敗: %w", err)
	}

	rec, err := row.record()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert はレルムと通知IDをキーに履歴を保存する。既存の行は履歴ごと置き換える。
func (s *NotificationStore) Upsert(ctx context.Context, realm string, record notification.Record) error {
	changes := record.Changes
	if changes == nil {
		changes = []notification.Change{}
	}
	encoded, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("履歴のシリアライズに失敗: %w", err)
	}

	row := historyRow{
		Realm:     realm,
		ID:        record.ID,
		Changes:   string(encoded),
		UpdatedAt: s.now().UTC().Format(timeLayout),
	}
	_, err = s.db.NamedExecContext(ctx, `
		INSERT INTO notification_histories (realm, id, changes, updated_at)
		VALUES (:realm, :id, :changes, :updated_at)
		ON CONFLICT (realm, id) DO UPDATE SET
			changes = excluded.changes,
			updated_at = excluded.updated_at`, row)
	if err != nil {
		return fmt.Errorf("通知履歴の保存に失敗: %w", err)
	}
	return nil
}
