// 開発用のJWTを発行するコマンド。
//
//	go run ./cmd/devtoken -realm realm-1 -email manager@example.com
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nao1215/rentwatch/internal/config"
	"github.com/nao1215/rentwatch/pkg/middleware"
)

func main() {
	var (
		userID = flag.String("user", "dev-user", "ユーザーID")
		email  = flag.String("email", "dev@example.com", "メールアドレス（履歴の記録者）")
		realm  = flag.String("realm", "", "レルム（必須）")
	)
	flag.Parse()

	if *realm == "" {
		fmt.Fprintln(os.Stderr, "-realm を指定してください")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗: %v\n", err)
		os.Exit(1)
	}

	token, err := middleware.GenerateJWT(cfg.JWTSecret, *userID, *email, *realm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
