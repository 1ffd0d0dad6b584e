// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"inventory_backend/internal/feature/auth/domain/entity"
	"inventory_backend/internal/feature/auth/usecase"
)

// DefaultUserTTL is used when a non-positive TTL is configured.
const DefaultUserTTL = 10 * time.Minute

// CachingUserRepository decorates a UserRepository with a Redis read-through cache for FindByID.
// Users are immutable after signup, so cached entries never need invalidation; the TTL only bounds memory.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingUserRepositoryがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to DefaultUserTTL. If namespace is empty, it uses "users".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = DefaultUserTTL
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create はそのまま下位リポジトリに委譲します。
func (c *CachingUserRepository) Create(ctx context.Context, user *entity.User) error {
	return c.inner.Create(ctx, user)
}

// FindByEmail はログイン経路なのでキャッシュしません。
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.inner.FindByEmail(ctx, email)
}

// ExistsByEmailOrUsername は一意性チェックのため常にデータベースに問い合わせます。
func (c *CachingUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	return c.inner.ExistsByEmailOrUsername(ctx, email, username)
}

// FindByID retrieves a user, checking cache first then falling back to the database.
// Not-found results are not cached. The password hash is never written to Redis, so a user
// served from the cache has an empty Password; credential checks go through FindByEmail.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var u entity.User
		if err := json.Unmarshal(b, &u); err == nil {
			return &u, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	u, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return u, nil
}

func (c *CachingUserRepository) cacheKey(id uuid.UUID) string {
	return c.namespace + ":" + id.String()
}
