package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const allGenres = "All Genres"

// NewsClient posts-api 客户端
type NewsClient struct {
	t *transport
}

// NewNewsClient 创建文章客户端，baseURL 为空时使用默认地址
func NewNewsClient(baseURL string, opts ...Option) *NewsClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultNewsBaseURL
	}
	return &NewsClient{t: newTransport(baseURL, opts...)}
}

// GetAllPosts 分页获取文章
func (c *NewsClient) GetAllPosts(ctx context.Context, query *PostQuery) (*PaginatedPosts, error) {
	path := "/newsposts"
	if query != nil {
		values := url.Values{}
		values.Set("page", strconv.Itoa(query.Page))
		if query.Size > 0 {
			values.Set("size", strconv.Itoa(query.Size))
		}
		if genre := strings.TrimSpace(query.Genre); genre != "" && genre != allGenres {
			values.Set("category", genre)
		}
		path += "?" + values.Encode()
	}
	var result PaginatedPosts
	if err := c.t.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	result.Pagination.fill()
	return &result, nil
}

// GetPostByID 获取单篇文章
func (c *NewsClient) GetPostByID(ctx context.Context, id string) (*Post, error) {
	path, err := postPath(id)
	if err != nil {
		return nil, err
	}
	var post Post
	if err := c.t.do(ctx, http.MethodGet, path, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost 创建文章，需要已登录
func (c *NewsClient) CreatePost(ctx context.Context, req PostCreateRequest) (*Post, error) {
	var post Post
	if err := c.t.do(ctx, http.MethodPost, "/newsposts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost 更新文章，仅作者可操作
func (c *NewsClient) UpdatePost(ctx context.Context, id string, req PostUpdateRequest) (*Post, error) {
	path, err := postPath(id)
	if err != nil {
		return nil, err
	}
	var post Post
	if err := c.t.do(ctx, http.MethodPut, path, req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost 软删除文章
func (c *NewsClient) DeletePost(ctx context.Context, id string) error {
	path, err := postPath(id)
	if err != nil {
		return err
	}
	return c.t.do(ctx, http.MethodDelete, path, nil, nil)
}

// GetCategories 获取分类列表
func (c *NewsClient) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.t.do(ctx, http.MethodGet, "/newsposts/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// SetToken 设置请求携带的令牌
func (c *NewsClient) SetToken(token string) {
	c.t.tokens.SetToken(token)
}

func postPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: post id is required", ErrRequestFailed)
	}
	return "/newsposts/" + url.PathEscape(id), nil
}

// fill 由页码推导 hasNext / hasPrev，页码从 0 开始
func (p *PaginationInfo) fill() {
	p.HasNext = p.Page+1 < p.TotalPages
	p.HasPrev = p.Page > 0
}
