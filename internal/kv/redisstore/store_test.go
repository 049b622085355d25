package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/newsdesk/internal/kv"
	"github.com/newsdesk/internal/kv/kvtest"

	"github.com/stretchr/testify/require"
)

// 需要真实 Redis：NEWSDESK_TEST_REDIS_URL=redis://127.0.0.1:6379/15
func TestRedisStoreConformance(t *testing.T) {
	redisURL := os.Getenv("NEWSDESK_TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("NEWSDESK_TEST_REDIS_URL not set")
	}
	kvtest.RunConformanceTests(t, func(t *testing.T) kv.Store {
		store, err := New(redisURL)
		require.NoError(t, err)
		require.NoError(t, store.client.FlushDB(context.Background()).Err())
		return store
	})
}

func TestNewRejectsInvalidURL(t *testing.T) {
	_, err := New("://bad")
	require.Error(t, err)
}
