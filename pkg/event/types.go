package event

import (
	"encoding/json"
	"time"
)

// AggregateType はイベントの対象となるエンティティの種類を表す。
type AggregateType string

const (
	// AggregateTypeNotification は通知エンティティを表す。
	AggregateTypeNotification AggregateType = "Notification"
)

// Type はイベントの種類を表す。
type Type string

const (
	// TypeNotificationStatusChanged は通知のワークフローステータスが変更されたことを表す。
	TypeNotificationStatusChanged Type = "NotificationStatusChanged"
)

// Event はEvent Storeに追記される不変のイベントレコード。
type Event struct {
	// ID はイベントの一意識別子（UUID）。
	ID string `json:"id"`
	// Realm はイベントが属するレルム。
	Realm string `json:"realm"`
	// AggregateID は対象エンティティの識別子。
	AggregateID string `json:"aggregate_id"`
	// AggregateType は対象エンティティの種類。
	AggregateType AggregateType `json:"aggregate_type"`
	// EventType はイベントの種類。
	EventType Type `json:"event_type"`
	// Data はイベント固有のデータ（JSON形式）。
	Data json.RawMessage `json:"data"`
	// Version はAggregate内でのイベントの順序番号。
	Version int64 `json:"version"`
	// CreatedAt はイベントが作成された日時。
	CreatedAt time.Time `json:"created_at"`
}

// NotificationStatusChangedData はNotificationStatusChangedイベントのデータ。
type NotificationStatusChangedData struct {
	// NotificationID は対象の通知ID。
	NotificationID string `json:"notification_id"`
	// Status は変更後のステータス。
	Status string `json:"status"`
	// Email は変更を行ったユーザーのメールアドレス。
	Email string `json:"email"`
	// ChangedAt は変更日時。
	ChangedAt time.Time `json:"changed_at"`
}
