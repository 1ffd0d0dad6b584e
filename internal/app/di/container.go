// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"inventory_backend/internal/app/router"
	authadapters "inventory_backend/internal/feature/auth/adapters"
	authhandler "inventory_backend/internal/feature/auth/transport/handler"
	authusecase "inventory_backend/internal/feature/auth/usecase"
	itemadapters "inventory_backend/internal/feature/items/adapters"
	itemhandler "inventory_backend/internal/feature/items/transport/handler"
	itemusecase "inventory_backend/internal/feature/items/usecase"
	"inventory_backend/internal/platform/cache"
	"inventory_backend/internal/platform/config"
	"inventory_backend/internal/platform/http/handler"
	jwtmw "inventory_backend/internal/platform/jwt"
	"inventory_backend/internal/platform/metrics"
	"inventory_backend/internal/shared/ratelimiter"
)

// NewUserRepository creates a UserRepository implementation.
// If Redis is available, lookups by ID are served through a Redis read-through cache.
func NewUserRepository(rdb *redis.Client, db *gorm.DB, cfg config.RedisConfig) authusecase.UserRepository {
	repo := authadapters.NewUserRepository(db)
	if rdb != nil {
		return cache.NewCachingUserRepository(rdb, cfg.UserCacheTTL, repo, "users")
	}
	return repo
}

// NewLimiter creates the signup/login limiter.
// Without Redis, or when disabled, every request is allowed.
func NewLimiter(rdb *redis.Client, cfg config.RateLimitConfig) ratelimiter.Limiter {
	if rdb == nil || !cfg.Enabled {
		return ratelimiter.Noop{}
	}
	return ratelimiter.NewRedisLimiter(rdb, cfg.Limit, cfg.Window, "ratelimit")
}

// NewEngine wires repositories, usecases and handlers into the HTTP router.
// rdb may be nil. logger may be nil to disable request logging.
func NewEngine(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) (*gin.Engine, error) {
	// Repository
	userRepo := NewUserRepository(rdb, db, cfg.Redis)
	itemRepo := itemadapters.NewItemRepository(db)

	// Usecase
	tokens := jwtmw.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	itemUC := itemusecase.NewItemUsecase(itemRepo)

	// Health
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Redisは任意の依存先なのでヘルスチェックの対象にしない
	pingers := []handler.Pinger{sqlDB}

	return router.NewRouter(router.Deps{
		Auth:        authhandler.NewAuthHandler(authUC),
		Items:       itemhandler.NewItemHandler(itemUC),
		Tokens:      tokens,
		Limiter:     NewLimiter(rdb, cfg.RateLimit),
		Metrics:     metrics.New(),
		Logger:      logger,
		Health:      pingers,
		CORSOrigins: cfg.Server.CORSOrigins,
	}), nil
}
