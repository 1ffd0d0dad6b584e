// Package logger はslogの初期化とGin用のリクエストログミドルウェアを提供します。
package logger

import (
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"

	jwtmw "inventory_backend/internal/platform/jwt"
)

// New returns the application logger.
// Development gets coloured tint output at Debug level, every other environment JSON at Info level.
func New(w io.Writer, development bool) *slog.Logger {
	if development {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// RequestLogger はリクエストごとに1行の構造化ログを出力するミドルウェアです。
// 認証済みリクエストにはuser_idを付与します。
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("remote_addr", c.ClientIP()),
		}
		if id, ok := jwtmw.IdentityFrom(c); ok {
			attrs = append(attrs, slog.String("user_id", id.UserID.String()))
		}

		switch {
		case status >= 500:
			logger.Error("request completed", attrs...)
		case status >= 400:
			logger.Warn("request completed", attrs...)
		default:
			logger.Info("request completed", attrs...)
		}
	}
}
