package notification

import "slices"

// Merge は永続化済みの履歴をIDが一致するフィード上の通知に付与する。
//
// 一致した通知のChangesは永続化側の履歴で上書きされる。フィードに存在しない
// 履歴（元の書類が削除された場合など）は結果に含めない。freshの順序は保持し、
// 要素をその場で書き換えて同じスライスを返す。
func Merge(fresh []Notification, persisted []Record) []Notification {
	for _, record := range persisted {
		for i := range fresh {
			if fresh[i].ID == record.ID {
				fresh[i].Changes = slices.Clone(record.Changes)
			}
		}
	}
	return fresh
}
