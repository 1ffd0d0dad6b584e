package ratelimiter

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory_backend/internal/api"
)

// Middleware limits requests per client IP under scope (e.g. "login").
// Exceeding the limit yields 429 with a Retry-After header.
// When the limiter itself fails the request is let through.
func Middleware(l Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter, err := l.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err, "scope", scope)
			c.Next()
			return
		}
		if !ok {
			slog.Warn("rate limit exceeded", "scope", scope, "remote_addr", c.ClientIP())
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
