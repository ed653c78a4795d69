package database

import (
	"context"
	"fmt"

	"hrm_records_go/pkg/log"

	"github.com/go-redis/redis/v8"
)

// NewRedis 创建并探活 Redis 客户端。addr 为空时返回 nil，调用方据此关闭黑名单功能。
func NewRedis(addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	log.Info("Redis client connected successfully")
	return rdb, nil
}
