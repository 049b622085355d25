package config

import (
	"fmt"
	"strings"

	"github.com/newsdesk/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server     ServerConfig    `mapstructure:"server"`
	PostsAPI   ListenConfig    `mapstructure:"posts_api"`
	UserAPI    ListenConfig    `mapstructure:"user_api"`
	LoggingAPI ListenConfig    `mapstructure:"logging_api"`
	Log        LogConfig       `mapstructure:"log"`
	AuditLog   AuditLogConfig  `mapstructure:"audit_log"`
	Database   DatabaseConfig  `mapstructure:"database"`
	JWT        JWTConfig       `mapstructure:"jwt"`
	Redis      RedisConfig     `mapstructure:"redis"`
	Queue      QueueConfig     `mapstructure:"queue"`
	KV         KVConfig        `mapstructure:"kv"`
	UserStore  UserStoreConfig `mapstructure:"user_store"`
	Events     EventsConfig    `mapstructure:"events"`
	CORS       CORSConfig      `mapstructure:"cors"`
	Security   SecurityConfig  `mapstructure:"security"`
	Captcha    CaptchaConfig   `mapstructure:"captcha"`
	Cache      CacheConfig     `mapstructure:"cache"`
	App        AppInfoConfig   `mapstructure:"app"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Mode string `mapstructure:"mode"` // debug / release
}

// ListenConfig 单个 HTTP 服务监听配置
type ListenConfig struct {
	Port string `mapstructure:"port"`
}

// Addr 拼接监听地址
func (c ListenConfig) Addr(host string) string {
	return host + ":" + c.Port
}

// AppInfoConfig 应用信息
type AppInfoConfig struct {
	Version string `mapstructure:"version"`
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// AuditLogConfig 审计日志落盘配置（logging 服务使用）
type AuditLogConfig struct {
	Dir             string `mapstructure:"dir"`
	Filename        string `mapstructure:"filename"`
	ErrorFilename   string `mapstructure:"error_filename"`
	MaxSizeMB       int    `mapstructure:"max_size_mb"`
	ErrorMaxSizeMB  int    `mapstructure:"error_max_size_mb"`
	MaxBackups      int    `mapstructure:"max_backups"`
	MaxAgeDays      int    `mapstructure:"max_age_days"`
	ErrorMaxAgeDays int    `mapstructure:"error_max_age_days"`
	Compress        bool   `mapstructure:"compress"`
	MirrorToConsole bool   `mapstructure:"mirror_to_console"`
}

// ToSinkOptions 转换为审计日志输出配置
func (c AuditLogConfig) ToSinkOptions() logger.SinkOptions {
	return logger.SinkOptions{
		Dir:             c.Dir,
		Filename:        c.Filename,
		ErrorFilename:   c.ErrorFilename,
		MaxSizeMB:       c.MaxSizeMB,
		ErrorMaxSizeMB:  c.ErrorMaxSizeMB,
		MaxBackups:      c.MaxBackups,
		MaxAgeDays:      c.MaxAgeDays,
		ErrorMaxAgeDays: c.ErrorMaxAgeDays,
		Compress:        c.Compress,
		MirrorToConsole: c.MirrorToConsole,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver   string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN      string             `mapstructure:"dsn"`    // 数据库连接串
	LogLevel string             `mapstructure:"log_level"`
	Pool     DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// KVConfig 键值存储配置
type KVConfig struct {
	Backend        string `mapstructure:"backend"` // memory / redis
	RedisURL       string `mapstructure:"redis_url"`
	JanitorSeconds int    `mapstructure:"janitor_seconds"`
	Prefix         string `mapstructure:"prefix"`
}

// UserStoreConfig 用户存储配置
type UserStoreConfig struct {
	Driver string `mapstructure:"driver"` // database / kv
}

// EventsConfig 事件发布订阅配置
type EventsConfig struct {
	Transport  string `mapstructure:"transport"` // memory / redis / queue
	BufferSize int    `mapstructure:"buffer_size"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	LoginRateLimit LoginRateLimitConfig `mapstructure:"login_rate_limit"`
	PasswordPolicy PasswordPolicyConfig `mapstructure:"password_policy"`
}

// LoginRateLimitConfig 登录限流配置
type LoginRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
}

// PasswordPolicyConfig 密码策略配置
type PasswordPolicyConfig struct {
	MinLength      int  `mapstructure:"min_length"`
	RequireUpper   bool `mapstructure:"require_upper"`
	RequireLower   bool `mapstructure:"require_lower"`
	RequireNumber  bool `mapstructure:"require_number"`
	RequireSpecial bool `mapstructure:"require_special"`
}

// CaptchaConfig 验证码配置
type CaptchaConfig struct {
	Provider string             `mapstructure:"provider"` // none / image
	Scenes   CaptchaSceneConfig `mapstructure:"scenes"`
	Image    CaptchaImageConfig `mapstructure:"image"`
}

// CaptchaSceneConfig 验证码场景开关
type CaptchaSceneConfig struct {
	Login    bool `mapstructure:"login"`
	Register bool `mapstructure:"register"`
}

// CaptchaImageConfig 图片验证码配置
type CaptchaImageConfig struct {
	Length        int `mapstructure:"length"`
	Width         int `mapstructure:"width"`
	Height        int `mapstructure:"height"`
	NoiseCount    int `mapstructure:"noise_count"`
	ShowLine      int `mapstructure:"show_line"`
	ExpireSeconds int `mapstructure:"expire_seconds"`
}

// CacheConfig 业务缓存配置
type CacheConfig struct {
	CategoryTTLSeconds int `mapstructure:"category_ttl_seconds"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // 从当前目录查找
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	setDefaults(viper.GetViper())

	// 环境变量支持（server.mode -> SERVER_MODE）
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("posts_api.port", "8000")
	v.SetDefault("user_api.port", "3001")
	v.SetDefault("logging_api.port", "3002")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("audit_log.dir", "")
	v.SetDefault("audit_log.filename", "application.log")
	v.SetDefault("audit_log.error_filename", "error.log")
	v.SetDefault("audit_log.max_size_mb", 100)
	v.SetDefault("audit_log.error_max_size_mb", 1)
	v.SetDefault("audit_log.max_backups", 30)
	v.SetDefault("audit_log.max_age_days", 30)
	v.SetDefault("audit_log.error_max_age_days", 5)
	v.SetDefault("audit_log.compress", false)
	v.SetDefault("audit_log.mirror_to_console", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/newsdesk.db")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expire_hours", 168)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "nd")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 10)
	v.SetDefault("queue.queues", map[string]int{
		"default":  10,
		"critical": 5,
	})
	v.SetDefault("kv.backend", "memory")
	v.SetDefault("kv.redis_url", "redis://127.0.0.1:6379/0")
	v.SetDefault("kv.janitor_seconds", 30)
	v.SetDefault("kv.prefix", "nd")
	v.SetDefault("user_store.driver", "database")
	v.SetDefault("events.transport", "memory")
	v.SetDefault("events.buffer_size", 64)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.login_rate_limit.window_seconds", 300)
	v.SetDefault("security.login_rate_limit.max_attempts", 10)
	v.SetDefault("security.password_policy.min_length", 6)
	v.SetDefault("security.password_policy.require_upper", false)
	v.SetDefault("security.password_policy.require_lower", false)
	v.SetDefault("security.password_policy.require_number", false)
	v.SetDefault("security.password_policy.require_special", false)
	v.SetDefault("captcha.provider", "none")
	v.SetDefault("captcha.scenes.login", false)
	v.SetDefault("captcha.scenes.register", false)
	v.SetDefault("captcha.image.length", 5)
	v.SetDefault("captcha.image.width", 240)
	v.SetDefault("captcha.image.height", 80)
	v.SetDefault("captcha.image.noise_count", 2)
	v.SetDefault("captcha.image.show_line", 2)
	v.SetDefault("captcha.image.expire_seconds", 300)
	v.SetDefault("cache.category_ttl_seconds", 300)
}
