package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inventory_backend/internal/api"
)

// ContextIdentity はGinコンテキストに認証済みIdentityを格納するキーです。
const ContextIdentity = "identity"

// Verifier はトークン検証のインターフェースです。
type Verifier interface {
	Verify(token string) (Identity, error)
}

// AuthRequired returns a Gin middleware that admits only requests carrying a valid bearer token.
// A missing token or a non-Bearer scheme is answered with 401, a token that fails verification with 403.
func AuthRequired(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorizationヘッダーを取得
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}

		// 2. 署名と有効期限を検証
		id, err := v.Verify(tokenStr)
		if err != nil {
			slog.Warn("token rejected", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "invalid or expired token"})
			return
		}

		// 3. 後続のハンドラーにIdentityを渡す
		c.Set(ContextIdentity, id)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthRequired.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
