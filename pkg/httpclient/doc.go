// Package httpclient はサービス間のHTTP通信を行うクライアントを提供する。
//
// 入居者サービスからの入居者取得や、Event Storeへのイベント追記に使用する。
// 呼び出し元のレルムはコンテキスト経由でX-Realmヘッダーに伝播する。
package httpclient
