package repository

import (
	"math"

	"gorm.io/gorm"
)

// applyPagination 应用分页参数，页码从 0 开始，非法页码按首页处理。
// 偏移量超出 int32 时直接返回空结果。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 0 {
		page = 0
	}
	if page > math.MaxInt32/pageSize {
		return query.Where("1 = 0")
	}
	return query.Limit(pageSize).Offset(page * pageSize)
}
