// Package kv 提供键值存储能力，内存与 Redis 两种实现通过配置选择。
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound 键不存在或已过期
var ErrNotFound = errors.New("kv: not found")

// Store 键值存储接口
type Store interface {
	// Set 写入值，ttl<=0 表示永不过期
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	// SetNX 键不存在时写入，返回是否写入成功
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	// TTL 返回剩余时间，永不过期时返回 -1
	TTL(ctx context.Context, key string) (time.Duration, error)
	Ping(ctx context.Context) error
	Close() error
}
