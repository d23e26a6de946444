package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testSecret はテスト用のJWTシークレット。
const testSecret = "test-secret-key-for-unit-tests"

// TestGenerateJWT はGenerateJWT関数を検証する。
func TestGenerateJWT(t *testing.T) {
	t.Parallel()

	t.Run("クレームにユーザー、メールアドレス、レルムが含まれること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateJWT(testSecret, "user-123", "manager@example.com", "realm-1")
		require.NoError(t, err)

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "manager@example.com", claims.Email)
		assert.Equal(t, "realm-1", claims.Realm)
		assert.Equal(t, Issuer, claims.Issuer)
		assert.Equal(t, "HS256", token.Method.Alg())
	})

	t.Run("有効期限が24時間後であること", func(t *testing.T) {
		t.Parallel()

		before := time.Now()
		tokenStr, err := GenerateJWT(testSecret, "user-exp", "exp@example.com", "realm-1")
		require.NoError(t, err)

		claims := &JWTClaims{}
		_, err = jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)

		assert.WithinDuration(t, before.Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
	})

	t.Run("異なるシークレットでは検証に失敗すること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateJWT(testSecret, "user-wrong", "wrong@example.com", "realm-1")
		require.NoError(t, err)

		_, err = jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(_ *jwt.Token) (any, error) {
			return []byte("wrong-secret"), nil
		})
		assert.Error(t, err)
	})
}

// newAuthRouter はJWTAuthを適用し、コンテキストの値を返すテスト用ルーター。
func newAuthRouter() *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(testSecret))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c),
			"email":   GetEmail(c),
			"realm":   GetRealm(c),
		})
	})
	return router
}

// TestJWTAuth はJWTAuthミドルウェアを検証する。
func TestJWTAuth(t *testing.T) {
	t.Parallel()

	t.Run("有効なトークンでコンテキストに認証情報が設定されること", func(t *testing.T) {
		t.Parallel()

		tokenStr, err := GenerateJWT(testSecret, "user-ok", "ok@example.com", "realm-ok")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		w := httptest.NewRecorder()
		newAuthRouter().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "user-ok", body["user_id"])
		assert.Equal(t, "ok@example.com", body["email"])
		assert.Equal(t, "realm-ok", body["realm"])
	})

	tests := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{
			name:   "Authorizationヘッダーがない場合401が返ること",
			header: func(_ *testing.T) string { return "" },
		},
		{
			name:   "Bearer形式でない場合401が返ること",
			header: func(_ *testing.T) string { return "Basic dXNlcjpwYXNz" },
		},
		{
			name:   "不正なトークンの場合401が返ること",
			header: func(_ *testing.T) string { return "Bearer not-a-token" },
		},
		{
			name: "異なるシークレットで署名されたトークンの場合401が返ること",
			header: func(t *testing.T) string {
				tokenStr, err := GenerateJWT("other-secret", "u", "u@example.com", "realm-1")
				require.NoError(t, err)
				return "Bearer " + tokenStr
			},
		},
		{
			name: "レルムを含まないトークンの場合401が返ること",
			header: func(t *testing.T) string {
				tokenStr, err := GenerateJWT(testSecret, "u", "u@example.com", "")
				require.NoError(t, err)
				return "Bearer " + tokenStr
			},
		},
		{
			name: "期限切れトークンの場合401が返ること",
			header: func(t *testing.T) string {
				claims := JWTClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
					},
					UserID: "u",
					Realm:  "realm-1",
				}
				tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return "Bearer " + tokenStr
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()
			newAuthRouter().ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
