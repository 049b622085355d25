package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newsdesk/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 0, 10},
		{"?page=2&size=5", 2, 5},
		{"?page=-3&size=0", -3, 0},
		{"?page=abc&size=xyz", 0, 10},
		{"?size=1000", 0, 1000},
	}
	for _, tc := range cases {
		c, _ := newTestContext("/api/posts" + tc.query)
		page, size := ParsePagination(c)
		assert.Equal(t, tc.wantPage, page, "query %q", tc.query)
		assert.Equal(t, tc.wantSize, size, "query %q", tc.query)
	}
}

func TestGetUserIDMissingResponds401(t *testing.T) {
	c, w := newTestContext("/")
	c.Set("request_id", "req-1")

	id, ok := GetUserID(c)
	require.False(t, ok)
	assert.Empty(t, id)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, MsgUserNotAuthenticated, body.Error)
	assert.Equal(t, "req-1", body.RequestID)
}

func TestGetUserIDPresent(t *testing.T) {
	c, _ := newTestContext("/")
	c.Set(ContextKeyUserID, "u-1")
	id, ok := GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, "u-1", id)
}

func TestRespondWithMappedError(t *testing.T) {
	target := errors.New("target")
	rules := []MappedError{{Target: target, Code: response.CodeConflict, Message: "conflict"}}

	c, w := newTestContext("/")
	RespondWithMappedError(c, fmt.Errorf("wrapped: %w", target), rules, response.CodeInternal, "fallback")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "conflict")

	c, w = newTestContext("/")
	RespondWithMappedError(c, errors.New("other"), rules, response.CodeInternal, "fallback")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "fallback")
}
