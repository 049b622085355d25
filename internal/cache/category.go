package cache

import (
	"context"
	"time"

	"github.com/newsdesk/internal/models"
)

const categoryListKey = "categories:all"

// GetCategories 读取分类列表缓存
func GetCategories(ctx context.Context) ([]models.Category, bool, error) {
	var categories []models.Category
	hit, err := GetJSON(ctx, categoryListKey, &categories)
	if err != nil || !hit {
		return nil, hit, err
	}
	return categories, true, nil
}

// SetCategories 写入分类列表缓存
func SetCategories(ctx context.Context, categories []models.Category, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, categoryListKey, categories, ttl)
}

// DelCategories 清除分类列表缓存
func DelCategories(ctx context.Context) error {
	return Del(ctx, categoryListKey)
}
