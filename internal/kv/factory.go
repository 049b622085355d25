package kv

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Backend 存储后端类型
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

const defaultJanitorInterval = 30 * time.Second

// Config 存储创建配置
type Config struct {
	Backend         Backend
	RedisURL        string
	JanitorInterval time.Duration
	Prefix          string
}

// StoreFactory 存储构造函数
type StoreFactory func(cfg Config) (Store, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[Backend]StoreFactory)
)

// RegisterBackend 注册存储后端，由各实现包在 init 中调用
func RegisterBackend(backend Backend, factory StoreFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[backend] = factory
}

// NewStoreFromConfig 按配置创建存储
func NewStoreFromConfig(cfg Config) (Store, error) {
	backend := Backend(strings.ToLower(strings.TrimSpace(string(cfg.Backend))))
	if backend == "" {
		backend = BackendMemory
	}
	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = defaultJanitorInterval
	}
	if backend == BackendRedis && strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, fmt.Errorf("redis url is required when kv backend is %q", BackendRedis)
	}

	factoriesMu.RLock()
	factory, ok := factories[backend]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported kv backend: %s (supported: %s, %s)", backend, BackendMemory, BackendRedis)
	}

	store, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	if prefix := strings.TrimSpace(cfg.Prefix); prefix != "" {
		return WithPrefix(store, prefix), nil
	}
	return store, nil
}
