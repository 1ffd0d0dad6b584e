// Package router はアプリケーションのHTTPルーティングを定義します。
package router

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "inventory_backend/internal/feature/auth/transport/handler"
	itemhandler "inventory_backend/internal/feature/items/transport/handler"
	"inventory_backend/internal/platform/http/handler"
	jwtmw "inventory_backend/internal/platform/jwt"
	"inventory_backend/internal/platform/logger"
	"inventory_backend/internal/platform/metrics"
	"inventory_backend/internal/shared/ratelimiter"
)

// Deps はルーターが必要とするハンドラーとミドルウェアの依存関係です。
type Deps struct {
	Auth    *authhandler.AuthHandler
	Items   *itemhandler.ItemHandler
	Tokens  jwtmw.Verifier
	Limiter ratelimiter.Limiter
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// Health はヘルスチェックで疎通確認する依存先です。
	Health      []handler.Pinger
	CORSOrigins []string
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Logger != nil {
		r.Use(logger.RequestLogger(d.Logger))
	}
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	limiter := d.Limiter
	if limiter == nil {
		limiter = ratelimiter.Noop{}
	}

	// 認証不要
	// 導通確認用
	health := handler.Health(d.Health...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	auth := r.Group("/auth")
	{
		// 新規ユーザー登録
		auth.POST("/signup", ratelimiter.Middleware(limiter, "signup"), d.Auth.Signup)
		// ログイン（JWT 発行）
		auth.POST("/login", ratelimiter.Middleware(limiter, "login"), d.Auth.Login)
		// 認証必須
		auth.GET("/me", jwtmw.AuthRequired(d.Tokens), d.Auth.Me)
	}

	// 認証必須のルート
	// → リクエストヘッダーに JWT が必要になる
	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired(d.Tokens))
	{
		protected.POST("/items", d.Items.Create)
		protected.GET("/items", d.Items.List)
		protected.GET("/items/:id", d.Items.Get)
		protected.PUT("/items/:id", d.Items.Update)
		protected.PATCH("/items/:id/quantity", d.Items.AdjustQuantity)
		protected.DELETE("/items/:id", d.Items.Delete)
		protected.GET("/stats", d.Items.Stats)
	}

	return r
}
