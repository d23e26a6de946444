// Package event はサービス間で共有するイベントの型とシリアライズ処理を提供する。
package event
