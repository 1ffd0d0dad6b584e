// Package ratelimiter は認証エンドポイント向けの固定ウィンドウ方式のレート制限を提供します。
package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter は、キーごとに操作の頻度を制限するインターフェースです。
type Limiter interface {
	// Allow はkeyに対する1回分の操作を記録し、上限内であればtrueを返します。
	// 上限を超えた場合はウィンドウがリセットされるまでの残り時間も返します。
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// RedisLimiter は、Redisの INCR と EXPIRE で固定ウィンドウのカウンタを実装します。
// カウンタはRedis上にあるため、複数のサーバーインスタンス間で共有されます。
type RedisLimiter struct {
	rdb       *redis.Client
	limit     int64         // ウィンドウあたりの上限
	window    time.Duration // どの単位でリセットするか
	namespace string
}

// NewRedisLimiter は新しいRedisLimiterのインスタンスを生成します。
func NewRedisLimiter(rdb *redis.Client, limit int64, window time.Duration, namespace string) *RedisLimiter {
	if namespace == "" {
		namespace = "ratelimit"
	}
	return &RedisLimiter{
		rdb:       rdb,
		limit:     limit,
		window:    window,
		namespace: namespace,
	}
}

// Allow はカウンタを1増やし、上限に達しているかを確認します。
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.namespace + ":" + key
	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limiter incr: %w", err)
	}
	// ウィンドウの最初のリクエストでだけ有効期限を設定する
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limiter expire: %w", err)
		}
	}
	if count <= l.limit {
		return true, 0, nil
	}

	ttl, err := l.rdb.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		// 期限が失われたキーは次のウィンドウで作り直させる
		_ = l.rdb.Expire(ctx, k, l.window).Err()
		ttl = l.window
	}
	return false, ttl, nil
}

// Noop はRedisが無効な環境で使う、常に許可するLimiterです。
type Noop struct{}

func (Noop) Allow(context.Context, string) (bool, time.Duration, error) {
	return true, 0, nil
}
