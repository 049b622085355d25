package shared

import (
	"strings"

	"github.com/newsdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

// MsgUserNotAuthenticated 未登录提示
const MsgUserNotAuthenticated = "User not authenticated"

// OptionalUserID 读取当前用户 ID，未登录时返回空串。
func OptionalUserID(c *gin.Context) string {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return ""
	}
	id, _ := value.(string)
	return strings.TrimSpace(id)
}

// GetUserID 读取当前用户 ID，未登录时写入 401 响应。
func GetUserID(c *gin.Context) (string, bool) {
	id := OptionalUserID(c)
	if id == "" {
		RespondError(c, response.CodeUnauthorized, MsgUserNotAuthenticated, nil)
		return "", false
	}
	return id, true
}
