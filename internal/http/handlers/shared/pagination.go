package shared

import (
	"strconv"
	"strings"

	"github.com/newsdesk/internal/constants"

	"github.com/gin-gonic/gin"
)

// ParsePagination 读取 page/size 查询参数，缺失或非法时使用默认值，范围校验由服务层负责。
func ParsePagination(c *gin.Context) (int, int) {
	return queryInt(c, "page", 0), queryInt(c, "size", constants.DefaultPageSize)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
