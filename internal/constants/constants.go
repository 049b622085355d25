package constants

// 事件频道常量
const (
	ChannelUserCreated  = "user:created"
	ChannelUserLoggedIn = "user:logged_in"
)

// 事件动作常量
const (
	ActionUserCreated  = "user_created"
	ActionUserLoggedIn = "user_logged_in"
)

// 日志级别常量
const (
	LogLevelInfo  = "info"
	LogLevelError = "error"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 事件传输方式常量
const (
	EventTransportMemory = "memory"
	EventTransportRedis  = "redis"
	EventTransportQueue  = "queue"
)

// 用户存储驱动常量
const (
	UserStoreDatabase = "database"
	UserStoreKV       = "kv"
)

// 验证码常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 文章相关常量
const (
	// CategoryAllGenres 前端"全部"选项，等同于不过滤
	CategoryAllGenres = "All Genres"
	// UnknownAuthorEmail 作者缺失时的占位
	UnknownAuthorEmail = "Unknown"
	// WordsPerMinute 阅读速度（词/分钟）
	WordsPerMinute = 200
	// DefaultPageSize 默认分页大小
	DefaultPageSize = 10
	// MaxPageSize 最大分页大小
	MaxPageSize = 100
)

// 授权动作常量
const (
	PostActionUpdate = "update"
	PostActionDelete = "delete"
)
