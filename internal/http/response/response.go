package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息（page 从 0 开始）
type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Success 200 响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204 响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// Error 错误响应，statusCode 即 HTTP 状态码
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, ErrorBody{
		Error:     msg,
		RequestID: requestID(c),
	})
}

// AbortWithError 中间件中使用的错误响应
func AbortWithError(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{
		Error:     msg,
		RequestID: requestID(c),
	})
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
