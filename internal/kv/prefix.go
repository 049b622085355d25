package kv

import (
	"context"
	"strings"
	"time"
)

type prefixedStore struct {
	inner  Store
	prefix string
}

// WithPrefix 为所有键追加命名空间前缀
func WithPrefix(store Store, prefix string) Store {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		return store
	}
	return &prefixedStore{inner: store, prefix: prefix + ":"}
}

func (s *prefixedStore) key(key string) string {
	return s.prefix + key
}

func (s *prefixedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.key(key), value, ttl)
}

func (s *prefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, s.key(key))
}

func (s *prefixedStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return s.inner.SetNX(ctx, s.key(key), value, ttl)
}

func (s *prefixedStore) Del(ctx context.Context, keys ...string) (int64, error) {
	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, s.key(key))
	}
	return s.inner.Del(ctx, prefixed...)
}

func (s *prefixedStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.inner.Exists(ctx, s.key(key))
}

func (s *prefixedStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.inner.TTL(ctx, s.key(key))
}

func (s *prefixedStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *prefixedStore) Close() error {
	return s.inner.Close()
}
