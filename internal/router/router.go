package router

import (
	"fmt"
	"strings"

	"github.com/newsdesk/internal/cache"
	"github.com/newsdesk/internal/config"
	loghandlers "github.com/newsdesk/internal/http/handlers/logs"
	posthandlers "github.com/newsdesk/internal/http/handlers/posts"
	userhandlers "github.com/newsdesk/internal/http/handlers/users"
	"github.com/newsdesk/internal/logger"
	"github.com/newsdesk/internal/provider"

	"github.com/gin-gonic/gin"
)

// 服务名，用于指标标签
const (
	ServicePosts   = "posts-api"
	ServiceUsers   = "user-service"
	ServiceLogging = "logging-service"
)

const loginRateLimitMessage = "Too many login attempts, retry in %d seconds"

// newEngine 创建带公共中间件的引擎
func newEngine(cfg *config.Config, c *provider.Container, serviceName string) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 中间件
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(log))
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(MetricsMiddleware(c.Metrics, serviceName))

	r.GET("/metrics", gin.WrapH(c.Metrics.Handler()))
	r.NoRoute(NoRouteHandler)
	return r
}

// SetupPostsRouter 文章 API 路由
func SetupPostsRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := newEngine(cfg, c, ServicePosts)
	h := posthandlers.New(c)
	resolver := NewAuthResolver(c.UserService)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		if strings.EqualFold(strings.TrimSpace(cfg.Server.Mode), gin.DebugMode) {
			api.GET("/error", h.TriggerError)
		}

		// 读接口可选登录，登录后可见自己的草稿
		read := api.Group("/newsposts")
		read.Use(OptionalUserJWTMiddleware(resolver))
		{
			read.GET("", h.GetPosts)
			read.GET("/categories", h.GetCategories)
			read.GET("/:id", h.GetPost)
		}

		write := api.Group("/newsposts")
		write.Use(UserJWTAuthMiddleware(resolver))
		{
			write.POST("", h.CreatePost)
			write.PUT("/:id", h.UpdatePost)
			write.DELETE("/:id", h.DeletePost)
		}
	}
	return r
}

// SetupUsersRouter 用户服务路由
func SetupUsersRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := newEngine(cfg, c, ServiceUsers)
	h := userhandlers.New(c)

	r.GET("/health", h.Health)
	users := r.Group("/users")
	{
		users.GET("/captcha", h.GetImageCaptcha)
		users.POST("/create", h.CreateUser)
		users.POST("/login", loginRateLimiter(cfg), h.Login)
		users.GET("/:id", h.GetUser)
	}
	return r
}

// SetupLoggingRouter 日志服务路由
func SetupLoggingRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := newEngine(cfg, c, ServiceLogging)
	h := loghandlers.New(c)

	r.GET("/health", h.Health)
	r.POST("/logs", h.CreateLog)
	return r
}

// loginRateLimiter Redis 可用时走 Lua 计数，否则使用进程内令牌桶
func loginRateLimiter(cfg *config.Config) gin.HandlerFunc {
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "nd"
	}
	rule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       loginRateLimitMessage,
	}
	if client := cache.Client(); client != nil {
		return RateLimitMiddleware(client, rule, KeyByIPAndJSONField("email"))
	}
	return LocalRateLimitMiddleware(rule, KeyByIPAndJSONField("email"))
}
