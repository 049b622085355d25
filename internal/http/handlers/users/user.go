package users

import (
	"errors"
	"strings"

	"github.com/newsdesk/internal/http/handlers/shared"
	"github.com/newsdesk/internal/http/response"
	"github.com/newsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgInternalError  = "Internal server error"
	msgUserIDRequired = "User ID is required"
	msgUserNotFound   = "User not found"
)

// CreateUserRequest 注册请求
type CreateUserRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	shared.CaptchaPayloadRequest
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	shared.CaptchaPayloadRequest
}

// CreateUser 用户注册
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "Email, password, and confirmPassword are required", nil)
		return
	}

	result, err := h.UserService.CreateUser(c.Request.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Captcha:         req.ToServicePayload(),
	})
	if err != nil {
		respondRegisterError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "User created successfully",
		"token":   result.Token,
		"user":    result.User,
	})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "Email and password are required", nil)
		return
	}

	result, err := h.UserService.LoginUser(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Captcha:  req.ToServicePayload(),
	})
	if err != nil {
		respondLoginError(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

// GetUser 获取用户信息
func (h *Handler) GetUser(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		shared.RespondError(c, response.CodeBadRequest, msgUserIDRequired, nil)
		return
	}

	profile, err := h.UserService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			shared.RespondError(c, response.CodeNotFound, msgUserNotFound, nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, msgInternalError, err)
		return
	}
	response.Success(c, gin.H{"user": profile})
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "OK", "service": "user-service"})
}
