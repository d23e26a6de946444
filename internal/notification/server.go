package notification

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nao1215/rentwatch/pkg/middleware"
)

// ServerConfig はHTTPサーバーの設定。
type ServerConfig struct {
	// Port はリッスンポート。
	Port string
	// JWTSecret はJWTの署名検証に使用する秘密鍵。
	JWTSecret string
	// RateLimit はクライアントIP単位のレート制限（例: "300-M"）。空の場合は制限しない。
	RateLimit string
	// AllowedOrigins はCORSで許可するオリジン。空の場合はCORSヘッダーを付与しない。
	AllowedOrigins []string
}

// Server は通知サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// manager は通知フィードの取得と更新を行う。
	manager *Manager
	// logger はログ出力先。
	logger logrus.FieldLogger
}

// NewServer は新しい通知サーバーを生成する。
func NewServer(cfg ServerConfig, manager *Manager, logger *logrus.Logger) (*Server, error) {
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.AllowedOrigins))
	}
	if cfg.RateLimit != "" {
		limit, err := middleware.RateLimit(cfg.RateLimit)
		if err != nil {
			return nil, err
		}
		router.Use(limit)
	}

	s := &Server{
		router:  router,
		port:    cfg.Port,
		manager: manager,
		logger:  logger,
	}
	s.setupRoutes(middleware.JWTAuth(cfg.JWTSecret))

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Handler はサーバーのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes はAPIルーティングを設定する。
// authは/api/v1配下に適用する認証ミドルウェア。
func (s *Server) setupRoutes(auth gin.HandlerFunc) {
	api := s.router.Group("/api/v1")
	api.Use(auth)
	s.registerRoutes(api)

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "notification"})
	})
}

// registerRoutes は通知APIのハンドラを登録する。
func (s *Server) registerRoutes(api *gin.RouterGroup) {
	notifications := api.Group("/notifications")
	{
		// 通知フィード取得
		notifications.GET("", s.handleList())
		// ワークフローのステータス更新
		notifications.PATCH("", s.handleUpdate())
		// 登録済みフィーダー一覧
		notifications.GET("/feeders", s.handleFeeders())
	}
}

// handleList は認証済みユーザーのレルムの通知フィードを返すハンドラ。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		realm := middleware.GetRealm(c)
		if realm == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "レルムが取得できません"})
			return
		}

		notifications, err := s.manager.List(c.Request.Context(), realm)
		if err != nil {
			s.logger.WithField("realm", realm).WithError(err).Error("通知フィード取得エラー")
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{err.Error()}})
			return
		}

		c.JSON(http.StatusOK, notifications)
	}
}

// handleUpdate は通知のステータス変更を履歴に追記するハンドラ。
// ボディは {"id": "...", "status": "..."}。それ以外のフィールドは無視する。
func (s *Server) handleUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		realm := middleware.GetRealm(c)
		if realm == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "レルムが取得できません"})
			return
		}

		raw, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストボディの読み込みに失敗しました: %v", err)})
			return
		}

		actor := Actor{
			UserID: middleware.GetUserID(c),
			Email:  middleware.GetEmail(c),
		}
		updated, err := s.manager.RecordUpdate(c.Request.Context(), realm, actor, raw)
		if err != nil {
			if errors.Is(err, ErrInvalidUpdate) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s.logger.WithField("realm", realm).WithError(err).Error("通知ステータス更新エラー")
			c.JSON(http.StatusInternalServerError, gin.H{"errors": []string{err.Error()}})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// handleFeeders は登録済みフィーダーの名前を実行順に返すハンドラ。
func (s *Server) handleFeeders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"feeders": s.manager.FeederNames()})
	}
}
