package notification

import (
	"context"
	"time"
)

// Type は通知の種類を表す。表示上の意図のみを表し、集約処理の挙動には影響しない。
type Type string

const (
	// TypeExpiredDocument は入居者書類の有効期限に関する通知。
	TypeExpiredDocument Type = "expiredDocument"
	// TypeWarning は対応が必要な警告。
	TypeWarning Type = "warning"
)

// Change はワークフロー履歴の1エントリ。履歴は追記のみで並び替えない。
type Change struct {
	// Date は変更日時。
	Date time.Time `json:"date"`
	// Email は変更を行ったユーザーのメールアドレス。
	Email string `json:"email"`
	// Status は変更後のステータス。任意の文字列を受け付ける。
	Status string `json:"status"`
}

// Notification はフィードに表示される通知。
// フィーダーがリクエストごとに生成し、永続化されるのは履歴（Changes）のみ。
type Notification struct {
	// ID は意味的な構成要素から導出される安定した識別子。
	ID string `json:"id"`
	// Type は通知の種類。
	Type Type `json:"type,omitempty"`
	// ExpirationDate は有効期限。nilの場合は常に期限切れとして扱う。
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	// Title は通知のタイトル。
	Title string `json:"title,omitempty"`
	// Description は通知の説明文。
	Description string `json:"description,omitempty"`
	// ActionURL は通知から遷移する先のURL。
	ActionURL string `json:"action_url"`
	// Changes はワークフロー履歴。最初の更新まではnil。
	Changes []Change `json:"changes,omitempty"`
	// Expired は基準日に対する期限切れ状態。読み出しのたびに再計算され、永続化しない。
	Expired bool `json:"expired"`
}

// Record は永続化されたワークフロー履歴。レルムと通知IDで一意になる。
type Record struct {
	// ID は通知ID。
	ID string
	// Changes はワークフロー履歴。
	Changes []Change
}

// Actor はステータス更新を行う認証済みユーザー。
type Actor struct {
	// UserID はユーザーID。
	UserID string
	// Email はユーザーのメールアドレス。履歴に記録される。
	Email string
}

// 保険確認の対象外となる物件種別。
const (
	// PropertyTypeLetterbox は郵便受け。
	PropertyTypeLetterbox = "letterbox"
	// PropertyTypeParking は駐車場。
	PropertyTypeParking = "parking"
)

// Occupant は入居者。
type Occupant struct {
	// ID は入居者の識別子。
	ID string
	// Name は入居者名。
	Name string
	// TerminationDate は契約終了日。nilは契約中。
	TerminationDate *time.Time
	// Documents は契約に紐づく書類（保険証書など）。
	Documents []Document
	// Properties は賃借している物件。
	Properties []LeasedProperty
}

// Document は入居者の書類。
type Document struct {
	// Name は書類名。
	Name string
	// ExpirationDate は有効期限。
	ExpirationDate *time.Time
}

// LeasedProperty は入居者が賃借している物件。
type LeasedProperty struct {
	// PropertyID は物件の識別子。
	PropertyID string
	// Type は物件種別（apartment, letterbox, parking など）。
	Type string
}

// OccupantFilter は入居者検索の条件。
type OccupantFilter struct {
	// OrderBy は並び替えに使うフィールド名。
	OrderBy string
	// Descending は降順の場合にtrue。
	Descending bool
}

// OccupantFinder は入居者の検索を行う。
type OccupantFinder interface {
	FindOccupants(ctx context.Context, realm string, filter OccupantFilter) ([]Occupant, error)
}

// NotificationStore はワークフロー履歴の永続化を行う。
// FindOne は履歴が存在しない場合に nil, nil を返す。
type NotificationStore interface {
	FindAll(ctx context.Context, realm string) ([]Record, error)
	FindOne(ctx context.Context, realm, id string) (*Record, error)
	Upsert(ctx context.Context, realm string, record Record) error
}

// Publisher はステータス変更を外部に通知する。
type Publisher interface {
	PublishStatusChanged(ctx context.Context, realm string, record Record) error
}
