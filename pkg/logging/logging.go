// Package logging はサービス共通のlogrusロガーを構築する。
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// フォーマット名。
const (
	// FormatText は人間が読みやすいテキスト形式。
	FormatText = "text"
	// FormatJSON はログ収集基盤向けのJSON形式。
	FormatJSON = "json"
)

// New は指定されたレベルとフォーマットでロガーを生成する。
// 出力先は標準出力。
func New(level, format string) (*logrus.Logger, error) {
	return NewWithWriter(os.Stdout, level, format)
}

// NewWithWriter は出力先を指定してロガーを生成する。
func NewWithWriter(w io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("ログレベルが不正です: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	case FormatText, "":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		return nil, fmt.Errorf("未対応のログフォーマット: %q", format)
	}
	return logger, nil
}

// Discard はテスト用に出力を捨てるロガーを返す。
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
