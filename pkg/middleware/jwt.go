package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Issuer はこのサービス群が発行するJWTのiss。
const Issuer = "rentwatch"

// tokenLifetime は発行するJWTの有効期間。
const tokenLifetime = 24 * time.Hour

// コンテキストキー。
const (
	contextKeyUserID = "user_id"
	contextKeyEmail  = "email"
	contextKeyRealm  = "realm"
)

// JWTClaims はJWTトークンのクレーム（ペイロード）を表す。
type JWTClaims struct {
	jwt.RegisteredClaims
	// UserID は認証済みユーザーの一意識別子。
	UserID string `json:"user_id"`
	// Email はユーザーのメールアドレス。ワークフロー履歴の記録者として使用する。
	Email string `json:"email"`
	// Realm はユーザーが所属する組織（テナント）。
	Realm string `json:"realm"`
}

// GenerateJWT はユーザー情報からJWTトークンを生成する。
func GenerateJWT(secret, userID, email, realm string) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
		UserID: userID,
		Email:  email,
		Realm:  realm,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// JWTAuth はJWTトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、コンテキストに "user_id" "email" "realm" を設定する。
// レルムを持たないトークンは拒否する。
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorizationヘッダーが必要です",
			})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Bearer トークン形式が不正です",
			})
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "トークンが無効です",
			})
			return
		}
		if claims.Realm == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "トークンにレルムが含まれていません",
			})
			return
		}

		SetIdentity(c, claims.UserID, claims.Email, claims.Realm)
		c.Next()
	}
}

// SetIdentity は認証済みユーザーの情報をGinコンテキストに設定する。
func SetIdentity(c *gin.Context, userID, email, realm string) {
	c.Set(contextKeyUserID, userID)
	c.Set(contextKeyEmail, email)
	c.Set(contextKeyRealm, realm)
}

// GetUserID はGinコンテキストからユーザーIDを取得する。
func GetUserID(c *gin.Context) string {
	return c.GetString(contextKeyUserID)
}

// GetEmail はGinコンテキストからメールアドレスを取得する。
func GetEmail(c *gin.Context) string {
	return c.GetString(contextKeyEmail)
}

// GetRealm はGinコンテキストからレルムを取得する。
// JWTAuthミドルウェアが事前に適用されている必要がある。
func GetRealm(c *gin.Context) string {
	return c.GetString(contextKeyRealm)
}
