package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Manager は通知フィードの取得とワークフロー更新を行う。
//
// 同じ通知IDに対する並行した更新は同期しない。永続化層のupsertが
// アトミックであることのみを前提とし、履歴の追記が競合した場合は
// 後勝ちになる。
type Manager struct {
	// registry は通知を生成するフィーダーの一覧。
	registry *Registry
	// store はワークフロー履歴の永続化層。
	store NotificationStore
	// evaluator は期限切れ判定を行う。
	evaluator Evaluator
	// publisher はステータス変更の送信先。nilの場合は送信しない。
	publisher Publisher
	// now は現在時刻を返す。
	now func() time.Time
	// logger はログ出力先。
	logger logrus.FieldLogger
}

// Option はManagerの設定を変更する。
type Option func(*Manager)

// WithClock は現在時刻の取得方法を差し替える。
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithPublisher はステータス変更の送信先を設定する。
func WithPublisher(p Publisher) Option {
	return func(m *Manager) {
		m.publisher = p
	}
}

// WithLogger はログ出力先を設定する。
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager は新しいManagerを生成する。
func NewManager(registry *Registry, store NotificationStore, evaluator Evaluator, opts ...Option) *Manager {
	m := &Manager{
		registry:  registry,
		store:     store,
		evaluator: evaluator,
		now:       time.Now,
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FeederNames は登録済みフィーダーの名前を実行順に返す。
func (m *Manager) FeederNames() []string {
	return m.registry.Names()
}

// List はレルムの通知フィードを返す。
// フィーダーを登録順に実行し、永続化済み履歴を付与したうえで、
// 1つの基準日で全件の期限切れ状態を計算する。
func (m *Manager) List(ctx context.Context, realm string) ([]Notification, error) {
	fresh := m.registry.Run(ctx, realm)

	records, err := m.store.FindAll(ctx, realm)
	if err != nil {
		return nil, fmt.Errorf("通知履歴の取得に失敗: %w", err)
	}

	merged := Merge(fresh, records)
	return m.evaluator.Annotate(m.now(), merged), nil
}

// RecordUpdate は生のリクエストボディからステータス更新を受け付け、履歴に追記する。
// 履歴が存在しない場合は新規に作成する。戻り値は現在時刻で期限切れ状態を付与した通知。
func (m *Manager) RecordUpdate(ctx context.Context, realm string, actor Actor, raw []byte) (*Notification, error) {
	req, err := SanitizeUpdate(raw)
	if err != nil {
		return nil, err
	}
	return m.Update(ctx, realm, actor, req)
}

// Update はサニタイズ済みのリクエストで履歴に変更を追記する。
func (m *Manager) Update(ctx context.Context, realm string, actor Actor, req UpdateRequest) (*Notification, error) {
	now := m.now()

	record, err := m.store.FindOne(ctx, realm, req.ID)
	if err != nil {
		return nil, fmt.Errorf("通知履歴の取得に失敗: %w", err)
	}
	if record == nil {
		record = &Record{}
	}
	record.ID = req.ID
	record.Changes = append(record.Changes, Change{
		Date:   now,
		Email:  actor.Email,
		Status: req.Status,
	})

	if err := m.store.Upsert(ctx, realm, *record); err != nil {
		return nil, fmt.Errorf("通知履歴の保存に失敗: %w", err)
	}

	if m.publisher != nil {
		if err := m.publisher.PublishStatusChanged(ctx, realm, *record); err != nil {
			// 送信に失敗しても更新自体は成功として扱う
			m.logger.WithFields(logrus.Fields{
				"realm":           realm,
				"notification_id": record.ID,
			}).WithError(err).Warn("ステータス変更イベントの送信に失敗")
		}
	}

	updated := []Notification{{ID: record.ID, Changes: record.Changes}}
	m.evaluator.Annotate(now, updated)
	return &updated[0], nil
}
