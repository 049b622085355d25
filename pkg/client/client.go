// Package client 提供调用 posts-api 与 user-service 的类型化客户端
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultNewsBaseURL posts-api 默认地址
	DefaultNewsBaseURL = "http://localhost:8000/api"
	// DefaultUserBaseURL user-service 默认地址
	DefaultUserBaseURL = "http://localhost:3001"

	defaultTimeout = 15 * time.Second
)

var (
	ErrRequestFailed   = errors.New("request failed")
	ErrResponseInvalid = errors.New("response invalid")
	ErrTokenInvalid    = errors.New("token invalid")
)

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("api error %d: %s (request_id=%s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsStatus 判断错误是否为指定状态码的 APIError
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// TokenStore 保存当前登录令牌
type TokenStore interface {
	Token() string
	SetToken(token string)
}

// MemoryTokenStore 进程内令牌存储
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// Token 返回当前令牌
func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken 设置令牌，空串表示登出
func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Option 客户端选项
type Option func(*transport)

// WithHTTPClient 指定底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(t *transport) {
		if hc != nil {
			t.http = hc
		}
	}
}

// WithTokenStore 指定令牌存储，可在多个客户端间共享
func WithTokenStore(store TokenStore) Option {
	return func(t *transport) {
		if store != nil {
			t.tokens = store
		}
	}
}

type transport struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

func newTransport(baseURL string, opts ...Option) *transport {
	t := &transport{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  &MemoryTokenStore{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// do 发送 JSON 请求，out 为 nil 时丢弃响应体
func (t *transport) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode body failed: %v", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request failed: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := t.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, respBody)
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: decode response failed: %v", ErrResponseInvalid, err)
	}
	return nil
}

func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	var payload struct {
		Error     string `json:"error"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Error
		if apiErr.Message == "" {
			apiErr.Message = payload.Message
		}
		apiErr.RequestID = payload.RequestID
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
