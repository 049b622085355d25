package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// AuthClient user-service 客户端
type AuthClient struct {
	t *transport
}

// NewAuthClient 创建用户客户端，baseURL 为空时使用默认地址
func NewAuthClient(baseURL string, opts ...Option) *AuthClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultUserBaseURL
	}
	return &AuthClient{t: newTransport(baseURL, opts...)}
}

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Captcha
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Captcha
}

// Register 注册并保存返回的令牌
func (c *AuthClient) Register(ctx context.Context, email, password, confirmPassword string, captcha *Captcha) (*AuthResponse, error) {
	req := registerRequest{Email: email, Password: password, ConfirmPassword: confirmPassword}
	if captcha != nil {
		req.Captcha = *captcha
	}
	var resp AuthResponse
	if err := c.t.do(ctx, http.MethodPost, "/users/create", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		c.t.tokens.SetToken(resp.Token)
	}
	return &resp, nil
}

// Login 登录并保存令牌
func (c *AuthClient) Login(ctx context.Context, email, password string, captcha *Captcha) (*AuthResponse, error) {
	req := loginRequest{Email: email, Password: password}
	if captcha != nil {
		req.Captcha = *captcha
	}
	var resp AuthResponse
	if err := c.t.do(ctx, http.MethodPost, "/users/login", req, &resp); err != nil {
		return nil, err
	}
	c.t.tokens.SetToken(resp.Token)
	return &resp, nil
}

// Logout 清除本地令牌
func (c *AuthClient) Logout() {
	c.t.tokens.SetToken("")
}

// Token 返回当前令牌
func (c *AuthClient) Token() string {
	return c.t.tokens.Token()
}

// GetUserByID 按 id 查询用户
func (c *AuthClient) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrRequestFailed)
	}
	var resp UserResponse
	if err := c.t.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCurrentUser 从令牌载荷中取 userId 后查询用户，不校验签名
func (c *AuthClient) GetCurrentUser(ctx context.Context, token string) (*UserResponse, error) {
	if strings.TrimSpace(token) == "" {
		token = c.t.tokens.Token()
	}
	userID, err := UserIDFromToken(token)
	if err != nil {
		return nil, err
	}
	return c.GetUserByID(ctx, userID)
}

// UserIDFromToken 解析 JWT 载荷中的 userId
func UserIDFromToken(token string) (string, error) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: malformed token", ErrTokenInvalid)
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return "", fmt.Errorf("%w: decode payload failed", ErrTokenInvalid)
	}
	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("%w: parse payload failed", ErrTokenInvalid)
	}
	if payload.UserID == "" {
		return "", fmt.Errorf("%w: user id not found in token", ErrTokenInvalid)
	}
	return payload.UserID, nil
}
