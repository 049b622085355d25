package posts

import (
	"strings"

	"github.com/newsdesk/internal/http/handlers/shared"
	"github.com/newsdesk/internal/http/response"
	"github.com/newsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePostRequest 创建文章请求
type CreatePostRequest struct {
	Header          string   `json:"header"`
	Content         string   `json:"content"`
	Excerpt         string   `json:"excerpt"`
	Image           string   `json:"image"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	IsPublished     *bool    `json:"is_published"`
	IsFeatured      *bool    `json:"is_featured"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
}

// UpdatePostRequest 更新文章请求，缺省字段保持不变
type UpdatePostRequest struct {
	Header          *string   `json:"header"`
	Content         *string   `json:"content"`
	Excerpt         *string   `json:"excerpt"`
	Image           *string   `json:"image"`
	Category        *string   `json:"category"`
	Tags            *[]string `json:"tags"`
	IsPublished     *bool     `json:"is_published"`
	IsFeatured      *bool     `json:"is_featured"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
}

// GetPosts 分页获取文章列表
func (h *Handler) GetPosts(c *gin.Context) {
	page, size := shared.ParsePagination(c)
	result, err := h.PostService.GetAllPosts(c.Request.Context(), service.PostListQuery{
		Page:     page,
		Size:     size,
		Category: c.Query("category"),
		UserID:   shared.OptionalUserID(c),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, msgFetchPostsFailed, err)
		return
	}

	response.SuccessWithPage(c, result.Posts, response.Pagination{
		Page:       result.Page,
		Size:       result.Size,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// GetPost 获取单篇文章
func (h *Handler) GetPost(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		shared.RespondError(c, response.CodeBadRequest, msgPostIDRequired, nil)
		return
	}

	post, err := h.PostService.GetPostByID(c.Request.Context(), id, shared.OptionalUserID(c))
	if err != nil {
		respondPostReadError(c, err)
		return
	}
	response.Success(c, post)
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := shared.GetUserID(c)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}

	post, err := h.PostService.CreatePost(c.Request.Context(), service.CreatePostInput{
		Header:          req.Header,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		Image:           req.Image,
		Category:        req.Category,
		Tags:            req.Tags,
		IsPublished:     req.IsPublished,
		IsFeatured:      req.IsFeatured,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}, userID)
	if err != nil {
		respondPostCreateError(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePost 更新文章，仅作者可操作
func (h *Handler) UpdatePost(c *gin.Context) {
	userID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		shared.RespondError(c, response.CodeBadRequest, msgPostIDRequired, nil)
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}

	post, err := h.PostService.UpdatePost(c.Request.Context(), id, service.UpdatePostInput{
		Header:          req.Header,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		Image:           req.Image,
		Category:        req.Category,
		Tags:            req.Tags,
		IsPublished:     req.IsPublished,
		IsFeatured:      req.IsFeatured,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}, userID)
	if err != nil {
		respondPostUpdateError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 软删除文章，仅作者可操作
func (h *Handler) DeletePost(c *gin.Context) {
	userID, ok := shared.GetUserID(c)
	if !ok {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		shared.RespondError(c, response.CodeBadRequest, msgPostIDRequired, nil)
		return
	}

	if err := h.PostService.DeletePost(c.Request.Context(), id, userID); err != nil {
		respondPostDeleteError(c, err)
		return
	}
	response.NoContent(c)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.PostService.GetCategories(c.Request.Context())
	if err != nil {
		shared.RespondError(c, response.CodeInternal, msgCategoriesFailed, err)
		return
	}
	response.Success(c, categories)
}
