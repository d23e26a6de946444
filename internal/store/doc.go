// Package store は通知サービスのSQLite永続化層を提供する。
//
// 通知のワークフロー履歴と、フィーダーが参照する入居者情報をレルム単位で保持する。
// スキーマはmigrations/配下のSQLファイルで管理し、Open時に未適用分を適用する。
package store
