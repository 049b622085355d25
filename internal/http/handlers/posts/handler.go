package posts

import (
	"time"

	"github.com/newsdesk/internal/provider"
)

// Handler 文章接口处理器
type Handler struct {
	*provider.Container
	startedAt time.Time
	now       func() time.Time
}

// New 创建文章处理器
func New(c *provider.Container) *Handler {
	return &Handler{
		Container: c,
		startedAt: time.Now(),
		now:       time.Now,
	}
}
