package router

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/newsdesk/internal/config"
	"github.com/newsdesk/internal/http/handlers/shared"
	"github.com/newsdesk/internal/http/response"
	"github.com/newsdesk/internal/metrics"
	"github.com/newsdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

const (
	msgTokenRequired = "Access token required"
	msgTokenInvalid  = "Invalid or expired token"
	msgInternalError = "Internal server error"
)

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// RecoveryMiddleware panic 恢复，统一返回 500
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("request_panic",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		response.AbortWithError(c, response.CodeInternal, msgInternalError)
	})
}

// MetricsMiddleware 记录请求计数与耗时
func MetricsMiddleware(m *metrics.Metrics, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Context(), serviceName, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// AuthResolver 鉴权中间件依赖的用户能力
type AuthResolver interface {
	ParseToken(token string) (*service.UserJWTClaims, error)
	ResolveAuthState(c *gin.Context, userID string) (bool, error)
}

// userServiceResolver 以 UserService 实现 AuthResolver
type userServiceResolver struct {
	users *service.UserService
}

// NewAuthResolver 基于用户服务构建鉴权依赖
func NewAuthResolver(users *service.UserService) AuthResolver {
	if users == nil {
		return nil
	}
	return userServiceResolver{users: users}
}

func (r userServiceResolver) ParseToken(token string) (*service.UserJWTClaims, error) {
	return r.users.Tokens().Parse(token)
}

func (r userServiceResolver) ResolveAuthState(c *gin.Context, userID string) (bool, error) {
	state, err := r.users.ResolveAuthState(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return state != nil && !state.Deleted, nil
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件，必须携带有效令牌
func UserJWTAuthMiddleware(resolver AuthResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.AbortWithError(c, response.CodeUnauthorized, msgTokenRequired)
			return
		}
		if !authenticate(c, resolver, tokenString) {
			response.AbortWithError(c, response.CodeUnauthorized, msgTokenInvalid)
			return
		}
		c.Next()
	}
}

// OptionalUserJWTMiddleware 可选鉴权，令牌缺失或无效时按游客处理
func OptionalUserJWTMiddleware(resolver AuthResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			authenticate(c, resolver, tokenString)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, resolver AuthResolver, tokenString string) bool {
	if resolver == nil {
		return false
	}
	claims, err := resolver.ParseToken(tokenString)
	if err != nil {
		shared.RequestLog(c).Debugw("user_token_rejected", "error", err)
		return false
	}
	active, err := resolver.ResolveAuthState(c, claims.UserID)
	if err != nil {
		shared.RequestLog(c).Warnw("user_auth_state_resolve_failed", "user_id", claims.UserID, "error", err)
		return false
	}
	if !active {
		return false
	}
	c.Set(shared.ContextKeyUserID, claims.UserID)
	c.Set(shared.ContextKeyUserEmail, claims.Email)
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer")) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// NoRouteHandler 未匹配路由
func NoRouteHandler(c *gin.Context) {
	response.NotFound(c, "Route not found")
}
