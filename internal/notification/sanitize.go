package notification

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidUpdate は更新リクエストの形式が不正であることを表す。
var ErrInvalidUpdate = errors.New("更新リクエストが不正です")

// updatableFields は更新リクエストで受け付けるフィールド。これ以外は読み捨てる。
var updatableFields = []string{"id", "status"}

// validate は更新リクエストの検証に使用するバリデータ。
var validate = validator.New(validator.WithRequiredStructEnabled())

// UpdateRequest はサニタイズ済みのステータス更新リクエスト。
type UpdateRequest struct {
	// ID は更新対象の通知ID。
	ID string `json:"id" validate:"required,max=128"`
	// Status は新しいステータス。
	Status string `json:"status" validate:"max=64"`
}

// SanitizeUpdate は生のJSONボディから許可されたフィールドだけを取り出して検証する。
// 未知のフィールドはエラーにせず無視する。
func SanitizeUpdate(raw []byte) (UpdateRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return UpdateRequest{}, fmt.Errorf("%w: JSONオブジェクトではありません: %v", ErrInvalidUpdate, err)
	}

	projected, err := json.Marshal(projectFields(fields, updatableFields))
	if err != nil {
		return UpdateRequest{}, fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}

	var req UpdateRequest
	if err := json.Unmarshal(projected, &req); err != nil {
		return UpdateRequest{}, fmt.Errorf("%w: フィールドの型が不正です: %v", ErrInvalidUpdate, err)
	}
	if err := validate.Struct(req); err != nil {
		return UpdateRequest{}, fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}
	return req, nil
}

// projectFields はallowedに含まれるキーだけを残したマップを返す。
func projectFields(fields map[string]json.RawMessage, allowed []string) map[string]json.RawMessage {
	projected := make(map[string]json.RawMessage, len(allowed))
	for _, name := range allowed {
		if v, ok := fields[name]; ok {
			projected[name] = v
		}
	}
	return projected
}
