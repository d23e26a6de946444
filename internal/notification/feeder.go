package notification

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// FeedFunc はレルムに対する通知候補を生成するフィーダー。
// エラーを返した場合、そのフィーダーの結果は0件として扱われる。
type FeedFunc func(ctx context.Context, realm string) ([]Notification, error)

// feeder は名前付きで登録されたフィーダー。
type feeder struct {
	name string
	fn   FeedFunc
}

// Registry はフィーダーを登録順に保持し、逐次実行する。
// 起動時に構築してManagerへ渡す。新しい通知元はRegisterで追加する。
type Registry struct {
	// feeders は登録順のフィーダー一覧。
	feeders []feeder
	// logger は失敗したフィーダーの記録に使用する。
	logger logrus.FieldLogger
}

// NewRegistry は空のRegistryを生成する。
func NewRegistry(logger logrus.FieldLogger) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Registry{logger: logger}
}

// Register はフィーダーを末尾に追加する。fnがnilの場合はパニックする。
func (r *Registry) Register(name string, fn FeedFunc) *Registry {
	if fn == nil {
		panic(fmt.Sprintf("notification: フィーダー %q の関数がnilです", name))
	}
	r.feeders = append(r.feeders, feeder{name: name, fn: fn})
	return r
}

// Names は登録済みフィーダーの名前を実行順に返す。
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.feeders))
	for _, f := range r.feeders {
		names = append(names, f.name)
	}
	return names
}

// Len は登録済みフィーダー数を返す。
func (r *Registry) Len() int {
	return len(r.feeders)
}

// Run はすべてのフィーダーを登録順に1つずつ実行し、結果を連結して返す。
// 失敗したフィーダーは0件として扱い、残りのフィーダーの実行を続ける。
func (r *Registry) Run(ctx context.Context, realm string) []Notification {
	notifications := make([]Notification, 0)
	for _, f := range r.feeders {
		found, err := r.runOne(ctx, f, realm)
		if err != nil {
			r.logger.WithFields(logrus.Fields{
				"feeder": f.name,
				"realm":  realm,
			}).WithError(err).Warn("フィーダーの実行に失敗したため結果を除外します")
			continue
		}
		notifications = append(notifications, found...)
	}
	return notifications
}

// runOne は1つのフィーダーを実行する。パニックはエラーに変換する。
func (r *Registry) runOne(ctx context.Context, f feeder, realm string) (found []Notification, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			found = nil
			err = fmt.Errorf("フィーダーがパニックしました: %v", rec)
		}
	}()
	return f.fn(ctx, realm)
}
