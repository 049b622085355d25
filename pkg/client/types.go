package client

import "time"

// Post 文章
type Post struct {
	ID              string     `json:"id"`
	Header          string     `json:"header"`
	Content         string     `json:"content"`
	Excerpt         string     `json:"excerpt,omitempty"`
	Image           string     `json:"image,omitempty"`
	Category        string     `json:"category,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	AuthorID        string     `json:"author_id,omitempty"`
	AuthorEmail     string     `json:"author_email,omitempty"`
	IsPublished     bool       `json:"is_published"`
	IsFeatured      bool       `json:"is_featured"`
	ViewsCount      int64      `json:"views_count"`
	LikesCount      int64      `json:"likes_count"`
	Slug            string     `json:"slug,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	ReadingTime     int        `json:"reading_time"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	Deleted         bool       `json:"deleted"`
}

// PostCreateRequest 创建文章
type PostCreateRequest struct {
	Header          string   `json:"header"`
	Content         string   `json:"content"`
	Excerpt         string   `json:"excerpt,omitempty"`
	Image           string   `json:"image,omitempty"`
	Category        string   `json:"category,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	IsPublished     *bool    `json:"is_published,omitempty"`
	IsFeatured      *bool    `json:"is_featured,omitempty"`
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
}

// PostUpdateRequest 部分更新，nil 字段不修改
type PostUpdateRequest struct {
	Header          *string   `json:"header,omitempty"`
	Content         *string   `json:"content,omitempty"`
	Excerpt         *string   `json:"excerpt,omitempty"`
	Image           *string   `json:"image,omitempty"`
	Category        *string   `json:"category,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	IsPublished     *bool     `json:"is_published,omitempty"`
	IsFeatured      *bool     `json:"is_featured,omitempty"`
	MetaTitle       *string   `json:"meta_title,omitempty"`
	MetaDescription *string   `json:"meta_description,omitempty"`
}

// PostQuery 列表查询，Genre 为空或 "All Genres" 时不过滤
type PostQuery struct {
	Page  int
	Size  int
	Genre string
}

// PaginationInfo 分页信息
type PaginationInfo struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// PaginatedPosts 文章分页结果
type PaginatedPosts struct {
	Data       []Post         `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// Category 分类
type Category struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	ColorActive string `json:"color_active"`
}

// User 用户公开信息
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// UserResponse 用户查询响应
type UserResponse struct {
	User User `json:"user"`
}

// Captcha 可选的图片验证码参数
type Captcha struct {
	ID   string `json:"captcha_id,omitempty"`
	Code string `json:"captcha_code,omitempty"`
}
