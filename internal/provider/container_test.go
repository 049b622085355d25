package provider

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/newsdesk/internal/config"
	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/events"
	"github.com/newsdesk/internal/models"
	"github.com/newsdesk/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupContainerTest(t *testing.T, mutate func(cfg *config.Config)) *Container {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "container-test-secret-key-0123456789"
	cfg.KV.Backend = "memory"
	cfg.UserStore.Driver = constants.UserStoreDatabase
	cfg.Events.Transport = constants.EventTransportMemory
	cfg.AuditLog.Dir = filepath.Join(t.TempDir(), "logs")
	cfg.Security.PasswordPolicy.MinLength = 6
	if mutate != nil {
		mutate(cfg)
	}

	c, err := NewContainerWithDB(cfg, db)
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestContainerWiresMemoryTransport(t *testing.T) {
	c := setupContainerTest(t, nil)

	if c.Subscriber == nil || c.Publisher == nil {
		t.Fatalf("memory transport should provide publisher and subscriber")
	}
	if _, ok := c.UserRepo.(*repository.GormUserRepository); !ok {
		t.Fatalf("database driver should use gorm user store, got %T", c.UserRepo)
	}
	if c.PostService == nil || c.UserService == nil || c.LoggingService == nil {
		t.Fatalf("services not initialized")
	}
	if _, ok := c.Publisher.(*events.MemoryBus); !ok {
		t.Fatalf("publisher want *events.MemoryBus got %T", c.Publisher)
	}
}

func TestContainerKVUserStore(t *testing.T) {
	c := setupContainerTest(t, func(cfg *config.Config) {
		cfg.UserStore.Driver = constants.UserStoreKV
	})
	if _, ok := c.UserRepo.(*repository.KVUserRepository); !ok {
		t.Fatalf("kv driver should use kv user store, got %T", c.UserRepo)
	}
	if err := c.KV.Ping(context.Background()); err != nil {
		t.Fatalf("kv ping failed: %v", err)
	}
}

func TestContainerRejectsUnavailableTransports(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	for _, transport := range []string{constants.EventTransportRedis, constants.EventTransportQueue, "carrier-pigeon"} {
		cfg := &config.Config{}
		cfg.Events.Transport = transport
		cfg.AuditLog.Dir = filepath.Join(t.TempDir(), "logs")
		if _, err := NewContainerWithDB(cfg, db); err == nil {
			t.Fatalf("transport %s should fail without backing service", transport)
		}
	}
	if _, err := NewContainerWithDB(&config.Config{}, nil); err == nil {
		t.Fatalf("nil db should fail")
	}
}
