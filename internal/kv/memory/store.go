// Package memory 进程内键值存储，适合单实例部署与测试。
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/newsdesk/internal/kv"
)

func init() {
	kv.RegisterBackend(kv.BackendMemory, func(cfg kv.Config) (kv.Store, error) {
		return New(cfg.JanitorInterval), nil
	})
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Store 内存存储
type Store struct {
	mu      sync.RWMutex
	data    map[string]entry
	now     func() time.Time
	stop    chan struct{}
	done    chan struct{}
	closeMu sync.Once
}

// New 创建内存存储，janitorInterval>0 时后台定期清理过期键
func New(janitorInterval time.Duration) *Store {
	s := &Store{
		data: make(map[string]entry),
		now:  time.Now,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	if janitorInterval > 0 {
		go s.janitor(janitorInterval)
	} else {
		close(s.done)
	}
	return s
}

func (s *Store) janitor(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, item := range s.data {
		if item.expired(now) {
			delete(s.data, key)
		}
	}
}

func (s *Store) newEntry(value []byte, ttl time.Duration) entry {
	copied := make([]byte, len(value))
	copy(copied, value)
	item := entry{value: copied}
	if ttl > 0 {
		item.expiresAt = s.now().Add(ttl)
	}
	return item
}

// lookup 读取未过期的条目（调用方持有锁）
func (s *Store) lookup(key string) (entry, bool) {
	item, ok := s.data[key]
	if !ok || item.expired(s.now()) {
		return entry{}, false
	}
	return item, true
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = s.newEntry(value, ttl)
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	item, ok := s.lookup(key)
	s.mu.RUnlock()
	if !ok {
		return nil, kv.ErrNotFound
	}
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

func (s *Store) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(key); ok {
		return false, nil
	}
	s.data[key] = s.newEntry(value, ttl)
	return true, nil
}

func (s *Store) Del(ctx context.Context, keys ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for _, key := range keys {
		if _, ok := s.lookup(key); ok {
			deleted++
		}
		delete(s.data, key)
	}
	return deleted, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.lookup(key)
	return ok, nil
}

func (s *Store) TTL(ctx context.Context, key string) (time.Duration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.lookup(key)
	if !ok {
		return 0, kv.ErrNotFound
	}
	if item.expiresAt.IsZero() {
		return -1, nil
	}
	return item.expiresAt.Sub(s.now()), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Close 停止后台清理
func (s *Store) Close() error {
	s.closeMu.Do(func() {
		close(s.stop)
	})
	<-s.done
	return nil
}
