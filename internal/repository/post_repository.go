package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/newsdesk/internal/models"

	"gorm.io/gorm"
)

// PostStore 文章存储端口
type PostStore interface {
	List(ctx context.Context, filter PostListFilter) ([]models.Post, int64, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	CountBySlug(ctx context.Context, slug string, excludeID *string) (int64, error)
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// List 文章列表，已软删除的文章不可见
func (r *GormPostRepository) List(ctx context.Context, filter PostListFilter) ([]models.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("deleted = ?", false)

	if viewer := strings.TrimSpace(filter.ViewerID); viewer != "" {
		query = query.Where("(is_published = ? OR author_id = ?)", true, viewer)
	} else {
		query = query.Where("is_published = ?", true)
	}
	if category := models.CategoryKey(filter.Category); category != "" {
		query = query.Where("category_key = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}

	var posts []models.Post
	if err := applyPagination(query, filter.Page, filter.PageSize).Order(orderBy).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID 根据 ID 获取未删除的文章
func (r *GormPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ? AND deleted = ?", id, false).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create 创建文章
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(post).Error)
}

// Update 更新文章
func (r *GormPostRepository) Update(ctx context.Context, post *models.Post) error {
	return translateDuplicate(r.db.WithContext(ctx).Save(post).Error)
}

// SoftDelete 标记删除
func (r *GormPostRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("deleted", true).Error
}

// IncrementViews 浏览数原子自增
func (r *GormPostRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

// CountBySlug 统计 slug 数量，包含已软删除的文章
func (r *GormPostRepository) CountBySlug(ctx context.Context, slug string, excludeID *string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func translateDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
