package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/newsdesk/internal/authz"
	"github.com/newsdesk/internal/cache"
	"github.com/newsdesk/internal/config"
	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/events"
	"github.com/newsdesk/internal/kv"
	_ "github.com/newsdesk/internal/kv/memory"
	_ "github.com/newsdesk/internal/kv/redisstore"
	"github.com/newsdesk/internal/logger"
	"github.com/newsdesk/internal/metrics"
	"github.com/newsdesk/internal/models"
	"github.com/newsdesk/internal/queue"
	"github.com/newsdesk/internal/repository"
	"github.com/newsdesk/internal/service"

	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	KV          kv.Store
	Metrics     *metrics.Metrics
	AuditSink   *logger.RotatingSink

	// 事件
	Publisher  events.Publisher
	Subscriber events.Subscriber // queue 传输时为空，由 worker 消费

	// Repositories
	PostRepo     repository.PostStore
	UserRepo     repository.UserStore
	CategoryRepo repository.CategoryStore

	// Services
	AuthzService    *authz.Service
	TokenIssuer     *service.TokenIssuer
	CaptchaService  *service.CaptchaService
	CategoryService *service.CategoryService
	PostService     *service.PostService
	UserService     *service.UserService
	LoggingService  *service.LoggingService

	closers []func() error
}

// NewContainer 初始化容器，数据库使用 models.DB
func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWithDB(cfg, models.DB)
}

// NewContainerWithDB 使用指定数据库初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config: cfg,
		DB:     db,
	}

	if err := c.initInfrastructure(); err != nil {
		_ = c.Close()
		return nil, err
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

// Close 释放容器持有的资源
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, c.closers[i]())
	}
	c.closers = nil
	return err
}

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		return err
	}
	c.QueueClient = queueClient
	c.closers = append(c.closers, queueClient.Close)

	store, err := kv.NewStoreFromConfig(kv.Config{
		Backend:         kv.Backend(cfg.KV.Backend),
		RedisURL:        cfg.KV.RedisURL,
		JanitorInterval: time.Duration(cfg.KV.JanitorSeconds) * time.Second,
		Prefix:          cfg.KV.Prefix,
	})
	if err != nil {
		return fmt.Errorf("init kv store failed: %w", err)
	}
	c.KV = store
	c.closers = append(c.closers, store.Close)

	m, err := metrics.Setup("newsdesk")
	if err != nil {
		return fmt.Errorf("init metrics failed: %w", err)
	}
	c.Metrics = m
	c.closers = append(c.closers, func() error { return m.Shutdown(context.Background()) })

	sink, err := logger.NewRotatingSink(cfg.AuditLog.ToSinkOptions())
	if err != nil {
		return fmt.Errorf("init audit log sink failed: %w", err)
	}
	c.AuditSink = sink
	c.closers = append(c.closers, sink.Close)

	return c.initEvents()
}

func (c *Container) initEvents() error {
	transport := strings.ToLower(strings.TrimSpace(c.Config.Events.Transport))
	switch transport {
	case "", constants.EventTransportMemory:
		bus := events.NewMemoryBus(c.Config.Events.BufferSize)
		c.Publisher = bus
		c.Subscriber = bus
		c.closers = append(c.closers, bus.Close)
	case constants.EventTransportRedis:
		if !cache.Enabled() {
			return fmt.Errorf("events transport %q requires redis.enabled", transport)
		}
		bus := events.NewRedisBus(cache.Client())
		c.Publisher = bus
		c.Subscriber = bus
	case constants.EventTransportQueue:
		if !c.QueueClient.Enabled() {
			return fmt.Errorf("events transport %q requires queue.enabled", transport)
		}
		c.Publisher = events.NewQueueBus(c.QueueClient)
	default:
		return fmt.Errorf("unsupported events transport: %s", transport)
	}
	logger.Infow("provider_events_ready", "transport", transport)
	return nil
}

func (c *Container) initRepositories() {
	db := c.DB
	c.PostRepo = repository.NewPostRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)

	switch strings.ToLower(strings.TrimSpace(c.Config.UserStore.Driver)) {
	case constants.UserStoreKV:
		c.UserRepo = repository.NewKVUserRepository(c.KV)
	default:
		c.UserRepo = repository.NewUserRepository(db)
	}
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapOwnerPolicies(); err != nil {
		logger.Errorw("provider_bootstrap_owner_policies_failed", "error", err)
		return err
	}

	cfg := c.Config
	c.TokenIssuer = service.NewTokenIssuer(cfg.JWT)
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha, c.KV)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, time.Duration(cfg.Cache.CategoryTTLSeconds)*time.Second)
	c.CategoryService.SetMetrics(c.Metrics)
	c.PostService = service.NewPostService(c.PostRepo, c.UserRepo, c.CategoryService, c.AuthzService)
	c.UserService = service.NewUserService(c.UserRepo, c.TokenIssuer, c.Publisher, c.CaptchaService, cfg.Security.PasswordPolicy)
	c.LoggingService = service.NewLoggingService(c.AuditSink)
	return nil
}
