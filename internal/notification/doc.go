// Package notification は物件管理向け通知フィードの内部実装を提供する。
//
// 複数のフィーダー（書類の有効期限、保険未加入の警告、回収予定の家賃など）を
// 登録順に実行して通知を集約し、永続化されたワークフロー履歴を通知IDで
// 突き合わせてから、基準日に対する期限切れ状態を付与して返す。
//
// 主な構成要素:
//   - GenerateID: 意味的な構成要素から安定した通知IDを生成する
//   - Evaluator: 日単位で期限切れ（expired）を判定する
//   - Registry: フィーダーを登録順に逐次実行する
//   - Merge: フィードと永続化済み履歴を突き合わせる
//   - Manager: 一覧取得とステータス更新のユースケース
package notification
