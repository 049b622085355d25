package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newsdesk/internal/service"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

type stubResolver struct {
	claims *service.UserJWTClaims
	active bool
}

func (s stubResolver) ParseToken(token string) (*service.UserJWTClaims, error) {
	if token != "good-token" {
		return nil, service.ErrInvalidToken
	}
	return s.claims, nil
}

func (s stubResolver) ResolveAuthState(c *gin.Context, userID string) (bool, error) {
	return s.active, nil
}

func newAuthTestEngine(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(mw)
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func TestUserJWTAuthMiddleware(t *testing.T) {
	resolver := stubResolver{claims: &service.UserJWTClaims{UserID: "u-1", Email: "a@x.com"}, active: true}
	r := newAuthTestEngine(UserJWTAuthMiddleware(resolver))

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing", header: "", status: http.StatusUnauthorized, body: msgTokenRequired},
		{name: "wrong scheme", header: "Basic good-token", status: http.StatusUnauthorized, body: msgTokenRequired},
		{name: "invalid", header: "Bearer bad-token", status: http.StatusUnauthorized, body: msgTokenInvalid},
		{name: "valid", header: "Bearer good-token", status: http.StatusOK, body: "u-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("status want %d got %d", tc.status, w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.body) {
				t.Fatalf("body should contain %q, got %s", tc.body, w.Body.String())
			}
		})
	}
}

func TestUserJWTAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	resolver := stubResolver{claims: &service.UserJWTClaims{UserID: "u-1"}, active: false}
	r := newAuthTestEngine(UserJWTAuthMiddleware(resolver))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
}

func TestOptionalUserJWTMiddleware(t *testing.T) {
	resolver := stubResolver{claims: &service.UserJWTClaims{UserID: "u-1"}, active: true}
	r := newAuthTestEngine(OptionalUserJWTMiddleware(resolver))

	for header, want := range map[string]string{
		"":                  `"user_id":""`,
		"Bearer bad-token":  `"user_id":""`,
		"Bearer good-token": `"user_id":"u-1"`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("header %q status want 200 got %d", header, w.Code)
		}
		if !strings.Contains(w.Body.String(), want) {
			t.Fatalf("header %q body want %s got %s", header, want, w.Body.String())
		}
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(nil))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status want 500 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), msgInternalError) {
		t.Fatalf("body should contain internal error message, got %s", w.Body.String())
	}
}
