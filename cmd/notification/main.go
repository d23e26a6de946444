// 通知サービスのエントリポイント。
// 入居者情報からレルムごとの通知フィードを生成し、
// ワークフロー履歴の更新を受け付ける。
package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nao1215/rentwatch/internal/config"
	"github.com/nao1215/rentwatch/internal/notification"
	"github.com/nao1215/rentwatch/internal/occupant"
	"github.com/nao1215/rentwatch/internal/store"
	"github.com/nao1215/rentwatch/pkg/httpclient"
	"github.com/nao1215/rentwatch/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("設定の読み込みに失敗")
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("ロガーの初期化に失敗")
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Fatal("タイムゾーンの初期化に失敗")
	}

	db, err := store.Open(context.Background(), cfg.DatabasePath, logger)
	if err != nil {
		logger.WithError(err).Fatal("データベースの初期化に失敗")
	}
	defer db.Close()

	var finder notification.OccupantFinder = store.NewOccupantStore(db)
	if cfg.OccupantServiceURL != "" {
		finder = occupant.NewClient(httpclient.New(cfg.OccupantServiceURL))
		logger.WithField("url", cfg.OccupantServiceURL).Info("入居者サービスから入居者を取得します")
	}

	opts := []notification.Option{notification.WithLogger(logger)}
	if cfg.EventStoreURL != "" {
		publisher := notification.NewEventPublisher(httpclient.New(cfg.EventStoreURL))
		opts = append(opts, notification.WithPublisher(publisher))
	}

	manager := notification.NewManager(
		notification.NewDefaultRegistry(finder, loc, logger),
		store.NewNotificationStore(db),
		notification.NewEvaluator(loc),
		opts...,
	)

	server, err := notification.NewServer(notification.ServerConfig{
		Port:           cfg.Port,
		JWTSecret:      cfg.JWTSecret,
		RateLimit:      cfg.RateLimit,
		AllowedOrigins: cfg.AllowedOrigins,
	}, manager, logger)
	if err != nil {
		logger.WithError(err).Fatal("通知サーバーの初期化に失敗")
	}

	logger.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"timezone": loc.String(),
		"feeders":  manager.FeederNames(),
	}).Info("通知サービスを起動します")
	if err := server.Run(); err != nil {
		logger.WithError(err).Fatal("通知サービスの起動に失敗")
	}
}
