// Package redisstore 基于 go-redis 的键值存储实现。
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/newsdesk/internal/kv"

	"github.com/redis/go-redis/v9"
)

func init() {
	kv.RegisterBackend(kv.BackendRedis, func(cfg kv.Config) (kv.Store, error) {
		return New(cfg.RedisURL)
	})
}

const pingTimeout = 5 * time.Second

// Store Redis 存储
type Store struct {
	client redis.UniversalClient
}

// New 通过 redis:// 连接串创建存储，启动时校验连通性
func New(redisURL string) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url failed: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Store{client: client}, nil
}

// NewWithClient 复用已有客户端
func NewWithClient(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, normalizeTTL(ttl)).Err()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (s *Store) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, value, normalizeTTL(ttl)).Result()
}

func (s *Store) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.client.Del(ctx, keys...).Result()
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// go-redis: -2 键不存在，-1 永不过期
	switch ttl {
	case -2:
		return 0, kv.ErrNotFound
	case -1:
		return -1, nil
	}
	return ttl, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return ttl
}
