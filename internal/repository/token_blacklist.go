package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const blacklistPrefix = "token_blacklist:"

// TokenBlacklist 记录已注销的令牌 jti，直到令牌自然过期。
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisTokenBlacklist struct {
	rdb *redis.Client
}

// NewTokenBlacklist 返回基于 Redis 的黑名单。rdb 为 nil 时返回 nil，表示不启用。
func NewTokenBlacklist(rdb *redis.Client) TokenBlacklist {
	if rdb == nil {
		return nil
	}
	return &redisTokenBlacklist{rdb: rdb}
}

func (b *redisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// 已过期的令牌无需再记
		return nil
	}
	return b.rdb.Set(ctx, blacklistPrefix+jti, 1, ttl).Err()
}

func (b *redisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
