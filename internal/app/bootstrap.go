package app

import (
	"errors"
	"fmt"

	"github.com/newsdesk/internal/cache"
	"github.com/newsdesk/internal/config"
	"github.com/newsdesk/internal/events"
	"github.com/newsdesk/internal/provider"
	"github.com/newsdesk/internal/router"
	"github.com/newsdesk/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	services, err := buildServices(cfg, container, mode)
	if err != nil {
		_ = container.Close()
		return nil, err
	}

	// 如果没有服务被启动（例如模式错误或配置导致都没起），应该报错
	if len(services) == 0 {
		_ = container.Close()
		return nil, errors.New("no services initialized (check mode and config)")
	}

	runner := NewRunner(services...)
	runner.AddCleanup(container.Close, cache.Close)
	return runner, nil
}

func buildServices(cfg *config.Config, c *provider.Container, mode string) ([]Service, error) {
	var services []Service
	host := cfg.Server.Host

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModePosts {
		engine := router.SetupPostsRouter(cfg, c)
		services = append(services, NewHTTPService(router.ServicePosts, cfg.PostsAPI.Addr(host), engine))
	}
	if mode == ModeAll || mode == ModeUsers {
		engine := router.SetupUsersRouter(cfg, c)
		services = append(services, NewHTTPService(router.ServiceUsers, cfg.UserAPI.Addr(host), engine))
	}
	if mode == ModeAll || mode == ModeLogging {
		engine := router.SetupLoggingRouter(cfg, c)
		services = append(services, NewHTTPService(router.ServiceLogging, cfg.LoggingAPI.Addr(host), engine))

		// queue 传输没有订阅端，由 worker 消费
		if c.Subscriber != nil {
			services = append(services, NewSubscriberService("event-subscriber", c.Subscriber, events.UserChannels(), c.LoggingService.HandleEvent))
		}
	}

	// 初始化 Worker 服务
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		consumer := worker.NewConsumer(c)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, fmt.Errorf("init worker failed: %w", err)
		}
		services = append(services, workerService)
	}
	return services, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "mode", opts.Mode, "services", runner.ServiceNames())
	return RunWithOptions(runner, opts)
}
