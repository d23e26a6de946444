// ローカルの入居者テーブルにJSONファイルの入居者を登録するコマンド。
// OCCUPANT_SERVICE_URL を設定せずに通知サービスを動かす場合に使用する。
//
//	go run ./cmd/seed -realm realm-1 -file occupants.json
package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/nao1215/rentwatch/internal/config"
	"github.com/nao1215/rentwatch/internal/occupant"
	"github.com/nao1215/rentwatch/internal/store"
	"github.com/nao1215/rentwatch/pkg/logging"
)

func main() {
	var (
		realm = flag.String("realm", "", "登録先のレルム（必須）")
		file  = flag.String("file", "", "入居者JSONファイル（必須）")
	)
	flag.Parse()

	if *realm == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("設定の読み込みに失敗")
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("ロガーの初期化に失敗")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.WithError(err).Fatal("入居者ファイルの読み込みに失敗")
	}
	occupants, err := occupant.ParseOccupants(data)
	if err != nil {
		logger.WithError(err).Fatal("入居者ファイルの解析に失敗")
	}

	ctx := context.Background()
	db, err := store.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		logger.WithError(err).Fatal("データベースの初期化に失敗")
	}
	defer db.Close()

	occupantStore := store.NewOccupantStore(db)
	for _, o := range occupants {
		if err := occupantStore.SaveOccupant(ctx, *realm, o); err != nil {
			logger.WithError(err).WithField("occupant_id", o.ID).Fatal("入居者の登録に失敗")
		}
	}
	logger.WithFields(logrus.Fields{"realm": *realm, "count": len(occupants)}).Info("入居者を登録しました")
}
