package users

import "github.com/newsdesk/internal/provider"

// Handler 用户服务接口处理器
type Handler struct {
	*provider.Container
}

// New 创建用户处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
