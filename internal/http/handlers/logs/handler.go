package logs

import (
	"errors"

	"github.com/newsdesk/internal/http/handlers/shared"
	"github.com/newsdesk/internal/http/response"
	"github.com/newsdesk/internal/provider"
	"github.com/newsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

const msgLogDataRequired = "Log data is required"

// Handler 日志服务接口处理器
type Handler struct {
	*provider.Container
}

// New 创建日志处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

// CreateLog 写入一条审计日志
func (h *Handler) CreateLog(c *gin.Context) {
	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil || len(data) == 0 {
		shared.RespondError(c, response.CodeBadRequest, msgLogDataRequired, nil)
		return
	}

	result, err := h.LoggingService.LogMessage(c.Request.Context(), data)
	if err != nil {
		if errors.Is(err, service.ErrLogDataRequired) {
			shared.RespondError(c, response.CodeBadRequest, msgLogDataRequired, nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "Failed to log message", err)
		return
	}
	response.Created(c, result)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "OK", "service": "logging-service"})
}
