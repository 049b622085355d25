package service

import (
	"context"
	"time"

	"github.com/newsdesk/internal/cache"
	"github.com/newsdesk/internal/logger"
	"github.com/newsdesk/internal/metrics"
	"github.com/newsdesk/internal/models"
	"github.com/newsdesk/internal/repository"
)

const categoryCacheMetricKey = "categories"

// CategoryService 分类业务服务
type CategoryService struct {
	repo    repository.CategoryStore
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewCategoryService 创建分类服务，ttl 为 0 时不缓存
func NewCategoryService(repo repository.CategoryStore, ttl time.Duration) *CategoryService {
	return &CategoryService{repo: repo, ttl: ttl}
}

// SetMetrics 设置缓存命中指标
func (s *CategoryService) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// List 获取分类列表（按名称升序）
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	cacheable := s.ttl > 0 && cache.Enabled()
	if cacheable {
		cached, hit, err := cache.GetCategories(ctx)
		switch {
		case err != nil:
			logger.Warnw("category_cache_get_failed", "error", err)
		case hit:
			s.metrics.RecordCacheHit(ctx, categoryCacheMetricKey)
			return cached, nil
		default:
			s.metrics.RecordCacheMiss(ctx, categoryCacheMetricKey)
		}
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}

	if cacheable {
		if err := cache.SetCategories(ctx, categories, s.ttl); err != nil {
			logger.Warnw("category_cache_set_failed", "error", err)
		}
	}
	return categories, nil
}
