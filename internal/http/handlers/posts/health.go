package posts

import (
	"errors"
	"strings"

	"github.com/newsdesk/internal/http/handlers/shared"
	"github.com/newsdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

var errTriggered = errors.New("test error triggered")

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	version := ""
	if h.Config != nil {
		version = strings.TrimSpace(h.Config.App.Version)
	}
	if version == "" {
		version = "dev"
	}
	now := h.now()
	response.Success(c, gin.H{
		"status":    "OK",
		"timestamp": now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		"uptime":    now.Sub(h.startedAt).Seconds(),
		"version":   version,
	})
}

// TriggerError 调试用，走统一错误出口返回 500
func (h *Handler) TriggerError(c *gin.Context) {
	shared.RespondError(c, response.CodeInternal, msgInternalError, errTriggered)
}
