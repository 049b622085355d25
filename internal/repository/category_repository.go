package repository

import (
	"context"

	"github.com/newsdesk/internal/models"

	"gorm.io/gorm"
)

// CategoryStore 分类存储端口
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 分类列表，按名称升序
func (r *GormCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
