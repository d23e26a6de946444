package notification

import (
	"crypto/md5" //nolint:gosec // 識別子の生成にのみ使用する
	"encoding/hex"
)

// GenerateID は意味的な構成要素を連結した文字列から通知IDを生成する。
// 同じ入力に対して常に同じ32文字の16進文字列を返す。
// 既存の永続化済み履歴と互換を保つためMD5を使用する。
func GenerateID(key string) string {
	sum := md5.Sum([]byte(key)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// documentKey は書類通知のID元文字列を組み立てる。
func documentKey(occupantID, formattedDate, documentName string) string {
	return occupantID + "_document_" + formattedDate + documentName
}

// noDocumentKey は書類未登録警告のID元文字列を組み立てる。
func noDocumentKey(occupantID string) string {
	return occupantID + "_no_document"
}
