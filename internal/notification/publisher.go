package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/rentwatch/pkg/event"
	"github.com/nao1215/rentwatch/pkg/httpclient"
)

// eventsPath はEvent Storeのイベント追記API。
const eventsPath = "/api/v1/events"

// EventPublisher はステータス変更をEvent Storeへ追記する。
type EventPublisher struct {
	// client はEvent StoreへのHTTPクライアント。
	client *httpclient.Client
}

// NewEventPublisher は新しいEventPublisherを生成する。
func NewEventPublisher(client *httpclient.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

// PublishStatusChanged は履歴の最新エントリをNotificationStatusChangedイベントとして送信する。
// イベントのバージョンは履歴の件数。
func (p *EventPublisher) PublishStatusChanged(ctx context.Context, realm string, record Record) error {
	if len(record.Changes) == 0 {
		return errors.New("送信する変更がありません")
	}
	last := record.Changes[len(record.Changes)-1]

	ev, err := event.New(realm, record.ID, event.AggregateTypeNotification, event.TypeNotificationStatusChanged,
		int64(len(record.Changes)), event.NotificationStatusChangedData{
			NotificationID: record.ID,
			Status:         last.Status,
			Email:          last.Email,
			ChangedAt:      last.Date,
		})
	if err != nil {
		return fmt.Errorf("イベントの生成に失敗: %w", err)
	}

	ctx = httpclient.WithRealm(ctx, realm)
	if err := p.client.PostJSON(ctx, eventsPath, ev, nil); err != nil {
		return fmt.Errorf("イベントの送信に失敗: %w", err)
	}
	return nil
}
