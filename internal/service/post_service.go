package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/models"
	"github.com/newsdesk/internal/repository"

	"github.com/google/uuid"
)

// PostAuthorizer 文章写操作授权
type PostAuthorizer interface {
	CanModifyPost(userID, ownerID, action string) (bool, error)
}

// PostService 文章业务服务
type PostService struct {
	posts      repository.PostStore
	users      repository.UserStore
	categories *CategoryService
	authorizer PostAuthorizer
	now        func() time.Time
}

// NewPostService 创建文章服务，authorizer 为空时按作者 ID 比对
func NewPostService(posts repository.PostStore, users repository.UserStore, categories *CategoryService, authorizer PostAuthorizer) *PostService {
	return &PostService{
		posts:      posts,
		users:      users,
		categories: categories,
		authorizer: authorizer,
		now:        time.Now,
	}
}

// PostListQuery 文章列表查询参数
type PostListQuery struct {
	Page     int // 从 0 开始
	Size     int
	Category string
	UserID   string // 登录用户，可额外看到自己的草稿
}

// PostPage 文章分页结果
type PostPage struct {
	Posts      []models.Post
	Page       int
	Size       int
	Total      int64
	TotalPages int
}

// CreatePostInput 创建文章输入
type CreatePostInput struct {
	Header          string
	Content         string
	Excerpt         string
	Image           string
	Category        string
	Tags            []string
	IsPublished     *bool
	IsFeatured      *bool
	MetaTitle       string
	MetaDescription string
}

// UpdatePostInput 更新文章输入，nil 字段保持不变
type UpdatePostInput struct {
	Header          *string
	Content         *string
	Excerpt         *string
	Image           *string
	Category        *string
	Tags            *[]string
	IsPublished     *bool
	IsFeatured      *bool
	MetaTitle       *string
	MetaDescription *string
}

// GetAllPosts 分页获取文章列表
func (s *PostService) GetAllPosts(ctx context.Context, query PostListQuery) (*PostPage, error) {
	page, size := normalizePostPagination(query.Page, query.Size)
	category := strings.TrimSpace(query.Category)
	if strings.EqualFold(category, constants.CategoryAllGenres) {
		category = ""
	}

	posts, total, err := s.posts.List(ctx, repository.PostListFilter{
		Page:     page,
		PageSize: size,
		Category: category,
		ViewerID: strings.TrimSpace(query.UserID),
	})
	if err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	if err := s.attachAuthorEmails(ctx, posts); err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages(total, size),
	}, nil
}

// GetPostByID 获取文章详情，已发布文章浏览数 +1
func (s *PostService) GetPostByID(ctx context.Context, id, userID string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("get post failed: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !post.IsPublished && (userID == "" || post.AuthorID != userID) {
		return nil, ErrPostNotFound
	}

	if post.IsPublished {
		if err := s.posts.IncrementViews(ctx, post.ID); err != nil {
			return nil, fmt.Errorf("increment post views failed: %w", err)
		}
		post.ViewsCount++
	}

	posts := []models.Post{*post}
	if err := s.attachAuthorEmails(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// CreatePost 创建文章
func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput, authorID string) (*models.Post, error) {
	header := strings.TrimSpace(input.Header)
	if header == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrPostInvalid
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("get author failed: %w", err)
	}
	if author == nil || author.Deleted {
		return nil, ErrAuthorNotFound
	}

	slug, err := s.resolveSlug(ctx, header, nil)
	if err != nil {
		return nil, err
	}

	isPublished := true
	if input.IsPublished != nil {
		isPublished = *input.IsPublished
	}
	isFeatured := false
	if input.IsFeatured != nil {
		isFeatured = *input.IsFeatured
	}

	post := models.Post{
		Header:          header,
		Content:         input.Content,
		Excerpt:         input.Excerpt,
		Image:           input.Image,
		Category:        strings.TrimSpace(input.Category),
		Tags:            models.StringArray(input.Tags),
		AuthorID:        author.ID,
		IsPublished:     isPublished,
		IsFeatured:      isFeatured,
		Slug:            slug,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		ReadingTime:     ReadingTime(input.Content),
	}
	if isPublished {
		now := s.now()
		post.PublishedAt = &now
	}

	if err := s.posts.Create(ctx, &post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("create post failed: %w", err)
	}
	post.AuthorEmail = author.Email
	return &post, nil
}

// UpdatePost 更新文章，仅作者本人可操作
func (s *PostService) UpdatePost(ctx context.Context, id string, input UpdatePostInput, authorID string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("get post failed: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	allowed, err := s.canModify(authorID, post.AuthorID, constants.PostActionUpdate)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrPostUpdateForbidden
	}

	if input.Header != nil {
		header := strings.TrimSpace(*input.Header)
		if header != "" && header != post.Header {
			slug, err := s.resolveSlug(ctx, header, &post.ID)
			if err != nil {
				return nil, err
			}
			post.Header = header
			post.Slug = slug
		}
	}
	if input.Content != nil && *input.Content != "" && *input.Content != post.Content {
		post.Content = *input.Content
		post.ReadingTime = ReadingTime(post.Content)
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.Image != nil {
		post.Image = *input.Image
	}
	if input.Category != nil {
		post.Category = strings.TrimSpace(*input.Category)
	}
	if input.Tags != nil {
		post.Tags = models.StringArray(*input.Tags)
	}
	if input.MetaTitle != nil {
		post.MetaTitle = *input.MetaTitle
	}
	if input.MetaDescription != nil {
		post.MetaDescription = *input.MetaDescription
	}
	if input.IsFeatured != nil {
		post.IsFeatured = *input.IsFeatured
	}
	if input.IsPublished != nil {
		if *input.IsPublished && !post.IsPublished && post.PublishedAt == nil {
			now := s.now()
			post.PublishedAt = &now
		}
		post.IsPublished = *input.IsPublished
	}

	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("update post failed: %w", err)
	}

	posts := []models.Post{*post}
	if err := s.attachAuthorEmails(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// DeletePost 软删除文章，仅作者本人可操作
func (s *PostService) DeletePost(ctx context.Context, id, authorID string) error {
	post, err := s.posts.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("get post failed: %w", err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	allowed, err := s.canModify(authorID, post.AuthorID, constants.PostActionDelete)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrPostDeleteForbidden
	}
	if err := s.posts.SoftDelete(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

// GetCategories 获取全部分类
func (s *PostService) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories failed: %w", err)
	}
	return categories, nil
}

func (s *PostService) canModify(userID, ownerID, action string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, nil
	}
	if s.authorizer == nil {
		return userID == ownerID, nil
	}
	allowed, err := s.authorizer.CanModifyPost(userID, ownerID, action)
	if err != nil {
		return false, fmt.Errorf("authorize post %s failed: %w", action, err)
	}
	return allowed, nil
}

// resolveSlug 生成 slug 并检查唯一性，标题无可用字符时退化为随机 slug
func (s *PostService) resolveSlug(ctx context.Context, header string, excludeID *string) (string, error) {
	slug := Slugify(header)
	if slug == "" {
		return "post-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12], nil
	}
	count, err := s.posts.CountBySlug(ctx, slug, excludeID)
	if err != nil {
		return "", fmt.Errorf("check post slug failed: %w", err)
	}
	if count > 0 {
		return "", ErrSlugExists
	}
	return slug, nil
}

func (s *PostService) attachAuthorEmails(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		if _, ok := seen[post.AuthorID]; ok || post.AuthorID == "" {
			continue
		}
		seen[post.AuthorID] = struct{}{}
		ids = append(ids, post.AuthorID)
	}

	emails := make(map[string]string, len(ids))
	if len(ids) > 0 {
		users, err := s.users.ListByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("list post authors failed: %w", err)
		}
		for _, user := range users {
			emails[user.ID] = user.Email
		}
	}

	for i := range posts {
		if email, ok := emails[posts[i].AuthorID]; ok {
			posts[i].AuthorEmail = email
		} else {
			posts[i].AuthorEmail = constants.UnknownAuthorEmail
		}
	}
	return nil
}

func normalizePostPagination(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	return page, size
}

func totalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
