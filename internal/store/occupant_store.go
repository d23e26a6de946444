package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nao1215/rentwatch/internal/notification"
)

// ErrUnsupportedOrder は並び替えに指定できないフィールドを表す。
var ErrUnsupportedOrder = errors.New("並び替えに指定できないフィールドです")

// occupantOrderColumns は並び替えに指定できるフィールドと列名の対応。
var occupantOrderColumns = map[string]string{
	"":     "name",
	"name": "name",
	"id":   "id",
}

// OccupantStore は入居者情報をSQLiteに保存する。
type OccupantStore struct {
	db *sqlx.DB
}

// NewOccupantStore は新しいOccupantStoreを生成する。
func NewOccupantStore(db *sqlx.DB) *OccupantStore {
	return &OccupantStore{db: db}
}

type occupantRow struct {
	ID              string  `db:"id"`
	Name            string  `db:"name"`
	TerminationDate *string `db:"termination_date"`
}

type documentRow struct {
	OccupantID     string  `db:"occupant_id"`
	Name           string  `db:"name"`
	ExpirationDate *string `db:"expiration_date"`
}

type propertyRow struct {
	OccupantID string `db:"occupant_id"`
	PropertyID string `db:"property_id"`
	Type       string `db:"property_type"`
}

// FindOccupants はレルムの入居者を書類と物件を含めて返す。
// 並び替えはfilter.OrderByの列で行い、同値の場合はID順。
func (s *OccupantStore) FindOccupants(ctx context.Context, realm string, filter notification.OccupantFilter) ([]notification.Occupant, error) {
	column, ok := occupantOrderColumns[filter.OrderBy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOrder, filter.OrderBy)
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	var rows []occupantRow
	query := fmt.Sprintf(`SELECT id, name, termination_date FROM occupants WHERE realm = ? ORDER BY %s %s, id ASC`, column, direction)
	if err := s.db.SelectContext(ctx, &rows, query, realm); err != nil {
		return nil, fmt.Errorf("入居者一覧の取得に失敗: %w", err)
	}
	if len(rows) == 0 {
		return []notification.Occupant{}, nil
	}

	occupants := make([]notification.Occupant, len(rows))
	index := make(map[string]int, len(rows))
	ids := make([]string, len(rows))
	for i, row := range rows {
		terminated, err := parseTime(row.TerminationDate)
		if err != nil {
			return nil, err
		}
		occupants[i] = notification.Occupant{ID: row.ID, Name: row.Name, TerminationDate: terminated}
		index[row.ID] = i
		ids[i] = row.ID
	}

	documents, err := selectIn[documentRow](ctx, s.db,
		`SELECT occupant_id, name, expiration_date FROM occupant_documents
		 WHERE realm = ? AND occupant_id IN (?) ORDER BY occupant_id, position`, realm, ids)
	if err != nil {
		return nil, fmt.Errorf("書類の取得に失敗: %w", err)
	}
	for _, d := range documents {
		expires, err := parseTime(d.ExpirationDate)
		if err != nil {
			return nil, err
		}
		o := &occupants[index[d.OccupantID]]
		o.Documents = append(o.Documents, notification.Document{Name: d.Name, ExpirationDate: expires})
	}

	properties, err := selectIn[propertyRow](ctx, s.db,
		`SELECT occupant_id, property_id, property_type FROM occupant_properties
		 WHERE realm = ? AND occupant_id IN (?) ORDER BY occupant_id, position`, realm, ids)
	if err != nil {
		return nil, fmt.Errorf("賃借物件の取得に失敗: %w", err)
	}
	for _, p := range properties {
		o := &occupants[index[p.OccupantID]]
		o.Properties = append(o.Properties, notification.LeasedProperty{PropertyID: p.PropertyID, Type: p.Type})
	}

	return occupants, nil
}

// selectIn はIN句を含むクエリを展開して実行する。
func selectIn[T any](ctx context.Context, db *sqlx.DB, query string, args ...any) ([]T, error) {
	expanded, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := db.SelectContext(ctx, &rows, db.Rebind(expanded), expandedArgs...); err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveOccupant は入居者を書類と物件ごと保存する。既存の書類と物件は置き換える。
func (s *OccupantStore) SaveOccupant(ctx context.Context, realm string, o notification.Occupant) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO occupants (realm, id, name, termination_date) VALUES (?, ?, ?, ?)
		ON CONFLICT (realm, id) DO UPDATE SET
			name = excluded.name,
			termination_date = excluded.termination_date`,
		realm, o.ID, o.Name, formatTime(o.TerminationDate)); err != nil {
		return fmt.Errorf("入居者 %s の保存に失敗: %w", o.ID, err)
	}

	for _, table := range []string{"occupant_documents", "occupant_properties"} {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE realm = ? AND occupant_id = ?`, table), realm, o.ID); err != nil {
			return fmt.Errorf("%s の削除に失敗: %w", table, err)
		}
	}

	for i, d := range o.Documents {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO occupant_documents (realm, occupant_id, position, name, expiration_date) VALUES (?, ?, ?, ?, ?)`,
			realm, o.ID, i, d.Name, formatTime(d.ExpirationDate)); err != nil {
			return fmt.Errorf("書類 %q の保存に失敗: %w", d.Name, err)
		}
	}

	for i, p := range o.Properties {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO occupant_properties (realm, occupant_id, position, property_id, property_type) VALUES (?, ?, ?, ?, ?)`,
			realm, o.ID, i, p.PropertyID, p.Type); err != nil {
			return fmt.Errorf("物件 %s の保存に失敗: %w", p.PropertyID, err)
		}
	}

	return tx.Commit()
}
