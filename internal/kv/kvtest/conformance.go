// Package kvtest 提供 kv.Store 实现的一致性测试。
package kvtest

import (
	"context"
	"testing"
	"time"

	"github.com/newsdesk/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// StoreFactory 为每个用例创建全新的存储
type StoreFactory func(t *testing.T) kv.Store

// RunConformanceTests 对存储实现执行统一用例
func RunConformanceTests(t *testing.T, factory StoreFactory) {
	cases := []struct {
		name string
		run  func(t *testing.T, store kv.Store)
	}{
		{"SetGet", testSetGet},
		{"GetMissing", testGetMissing},
		{"SetOverwrites", testSetOverwrites},
		{"SetNX", testSetNX},
		{"Del", testDel},
		{"Exists", testExists},
		{"TTL", testTTL},
		{"Expiry", testExpiry},
		{"Ping", testPing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := factory(t)
			t.Cleanup(func() { _ = store.Close() })
			tc.run(t, store)
		})
	}
}

func testSetGet(t *testing.T, store kv.Store) {
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "kvtest:string", []byte("hello"), 0))
	got, err := store.Get(ctx, "kvtest:string")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func testGetMissing(t *testing.T, store kv.Store) {
	_, err := store.Get(context.Background(), "kvtest:missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func testSetOverwrites(t *testing.T, store kv.Store) {
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "kvtest:overwrite", []byte("v1"), 0))
	require.NoError(t, store.Set(ctx, "kvtest:overwrite", []byte("v2"), 0))
	got, err := store.Get(ctx, "kvtest:overwrite")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func testSetNX(t *testing.T, store kv.Store) {
	ctx := context.Background()
	ok, err := store.SetNX(ctx, "kvtest:nx", []byte("first"), 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.SetNX(ctx, "kvtest:nx", []byte("second"), 0)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.Get(ctx, "kvtest:nx")
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))
}

func testDel(t *testing.T, store kv.Store) {
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "kvtest:del:a", []byte("a"), 0))
	require.NoError(t, store.Set(ctx, "kvtest:del:b", []byte("b"), 0))

	deleted, err := store.Del(ctx, "kvtest:del:a", "kvtest:del:b", "kvtest:del:missing")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = store.Get(ctx, "kvtest:del:a")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func testExists(t *testing.T, store kv.Store) {
	ctx := context.Background()
	exists, err := store.Exists(ctx, "kvtest:exists")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Set(ctx, "kvtest:exists", []byte("1"), 0))
	exists, err = store.Exists(ctx, "kvtest:exists")
	require.NoError(t, err)
	assert.True(t, exists)
}

func testTTL(t *testing.T, store kv.Store) {
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "kvtest:ttl:forever", []byte("1"), 0))
	ttl, err := store.TTL(ctx, "kvtest:ttl:forever")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)

	require.NoError(t, store.Set(ctx, "kvtest:ttl:short", []byte("1"), time.Minute))
	ttl, err = store.TTL(ctx, "kvtest:ttl:short")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	_, err = store.TTL(ctx, "kvtest:ttl:missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func testExpiry(t *testing.T, store kv.Store) {
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "kvtest:expiry", []byte("1"), 50*time.Millisecond))
	require.Eventually(t, func() bool {
		_, err := store.Get(ctx, "kvtest:expiry")
		return err == kv.ErrNotFound
	}, 2*time.Second, 20*time.Millisecond)

	ok, err := store.SetNX(ctx, "kvtest:expiry", []byte("again"), 0)
	require.NoError(t, err)
	assert.True(t, ok, "expired key should be writable with SetNX")
}

func testPing(t *testing.T, store kv.Store) {
	assert.NoError(t, store.Ping(context.Background()))
}
