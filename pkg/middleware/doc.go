// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// JWT認証（ユーザー、メールアドレス、レルムの取り出し）、構造化リクエストログ、
// パニックリカバリ、CORS設定、IP単位のレート制限を含む。
package middleware
