package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// フィーダー名。
const (
	FeederExpiredDocuments = "expiredDocuments"
	FeederMissingInsurance = "missingInsurance"
	FeederDuesToCollect    = "duesToCollect"
)

// documentDateLayout は書類の有効期限をID元文字列と説明文に埋め込む形式（DD/MM/YYYY）。
const documentDateLayout = "02/01/2006"

// NewDefaultRegistry は標準のフィーダーを登録したRegistryを生成する。
// 実行順は書類期限、保険未加入、家賃回収の順。
func NewDefaultRegistry(finder OccupantFinder, loc *time.Location, logger logrus.FieldLogger) *Registry {
	return NewRegistry(logger).
		Register(FeederExpiredDocuments, ExpiredDocuments(finder, loc)).
		Register(FeederMissingInsurance, MissingInsurance(finder)).
		Register(FeederDuesToCollect, DuesToCollect())
}

// ExpiredDocuments は入居者の書類ごとに有効期限の通知を生成するフィーダーを返す。
// 入居者は名前順に走査する。
func ExpiredDocuments(finder OccupantFinder, loc *time.Location) FeedFunc {
	if loc == nil {
		loc = time.Local
	}
	return func(ctx context.Context, realm string) ([]Notification, error) {
		occupants, err := finder.FindOccupants(ctx, realm, OccupantFilter{OrderBy: "name"})
		if err != nil {
			return nil, fmt.Errorf("入居者の取得に失敗: %w", err)
		}

		var notifications []Notification
		for _, o := range occupants {
			for _, doc := range o.Documents {
				date := formatDocumentDate(doc.ExpirationDate, loc)
				notifications = append(notifications, Notification{
					ID:             GenerateID(documentKey(o.ID, date, doc.Name)),
					Type:           TypeExpiredDocument,
					ExpirationDate: cloneTime(doc.ExpirationDate),
					Title:          o.Name,
					Description:    describeDocument(doc.Name, date),
				})
			}
		}
		return notifications, nil
	}
}

// MissingInsurance は書類が1件も登録されていない契約中の入居者に警告を生成するフィーダーを返す。
// 郵便受けと駐車場以外の物件を1件でも借りている入居者が対象で、入居者ごとに1件だけ生成する。
func MissingInsurance(finder OccupantFinder) FeedFunc {
	return func(ctx context.Context, realm string) ([]Notification, error) {
		occupants, err := finder.FindOccupants(ctx, realm, OccupantFilter{OrderBy: "name"})
		if err != nil {
			return nil, fmt.Errorf("入居者の取得に失敗: %w", err)
		}

		var notifications []Notification
		for _, o := range occupants {
			if o.TerminationDate != nil || len(o.Documents) > 0 {
				continue
			}
			if !hasInsurableProperty(o.Properties) {
				continue
			}
			notifications = append(notifications, Notification{
				ID:          GenerateID(noDocumentKey(o.ID)),
				Type:        TypeWarning,
				Title:       o.Name,
				Description: "賃貸借契約に書類が登録されていません。賃借物件の保険証書が不足していませんか？",
			})
		}
		return notifications, nil
	}
}

// DuesToCollect は回収予定の家賃を通知するフィーダー。現在は常に0件を返す。
func DuesToCollect() FeedFunc {
	return func(_ context.Context, _ string) ([]Notification, error) {
		return nil, nil
	}
}

// hasInsurableProperty は保険確認が必要な物件を1件でも含むかを返す。
// 最初に該当する物件が見つかった時点で走査をやめる。
func hasInsurableProperty(properties []LeasedProperty) bool {
	for _, p := range properties {
		if p.Type != PropertyTypeLetterbox && p.Type != PropertyTypeParking {
			return true
		}
	}
	return false
}

func formatDocumentDate(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format(documentDateLayout)
}

func describeDocument(name, date string) string {
	if date == "" {
		return fmt.Sprintf("%sの有効期限が登録されていません", name)
	}
	return fmt.Sprintf("%sの有効期限は%sです", name, date)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
