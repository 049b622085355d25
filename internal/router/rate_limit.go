package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/newsdesk/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	msgRateLimitUnavailable = "Rate limit unavailable"
	defaultRateLimitMessage = "Too many requests, retry in %d seconds"
	localLimiterMaxKeys     = 10000
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	// Message 超限提示，%d 为等待秒数
	Message string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) limitedMessage(waitSeconds int) string {
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = defaultRateLimitMessage
	}
	return fmt.Sprintf(msg, waitSeconds)
}

func (r RateLimitRule) buildKey(c *gin.Context, keyFunc RateLimitKeyFunc) string {
	key := ""
	if keyFunc != nil {
		key = strings.TrimSpace(keyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if r.Prefix != "" {
		key = fmt.Sprintf("%s:%s", r.Prefix, key)
	}
	return key
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware Redis 频率限制中间件
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		key := rule.buildKey(c, keyFunc)
		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds).Result()
		if err != nil {
			response.AbortWithError(c, response.CodeInternal, msgRateLimitUnavailable)
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) < 2 {
			response.AbortWithError(c, response.CodeInternal, msgRateLimitUnavailable)
			return
		}
		count, ok := toInt64(values[0])
		if !ok {
			response.AbortWithError(c, response.CodeInternal, msgRateLimitUnavailable)
			return
		}
		ttlSeconds, _ := toInt64(values[1])
		if count > int64(rule.MaxRequests) {
			waitSeconds := int(ttlSeconds)
			if waitSeconds < 1 {
				waitSeconds = rule.WindowSeconds
			}
			if waitSeconds < 1 {
				waitSeconds = 1
			}
			response.AbortWithError(c, response.CodeTooManyRequests, rule.limitedMessage(waitSeconds))
			return
		}

		c.Next()
	}
}

// localLimiters 进程内令牌桶集合
type localLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func newLocalLimiters(rule RateLimitRule) *localLimiters {
	window := time.Duration(rule.WindowSeconds) * time.Second
	return &localLimiters{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(window / time.Duration(rule.MaxRequests)),
		burst:    rule.MaxRequests,
		now:      time.Now,
	}
}

// reserve 返回是否放行以及需要等待的时长
func (l *localLimiters) reserve(key string) (bool, time.Duration) {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= localLimiterMaxKeys {
			l.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	now := l.now()
	if limiter.AllowN(now, 1) {
		return true, 0
	}
	reservation := limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return false, delay
}

// LocalRateLimitMiddleware 进程内令牌桶限流，Redis 不可用时使用
func LocalRateLimitMiddleware(rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if !rule.enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	limiters := newLocalLimiters(rule)
	return func(c *gin.Context) {
		allowed, delay := limiters.reserve(rule.buildKey(c, keyFunc))
		if !allowed {
			waitSeconds := int(math.Ceil(delay.Seconds()))
			if waitSeconds < 1 {
				waitSeconds = 1
			}
			response.AbortWithError(c, response.CodeTooManyRequests, rule.limitedMessage(waitSeconds))
			return
		}
		c.Next()
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	value, ok := payload[field]
	if !ok {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
