package worker

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/newsdesk/internal/config"

	"github.com/redis/go-redis/v9"
)

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{}, &Consumer{}); err == nil {
		t.Fatalf("disabled queue should be rejected")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should be rejected")
	}
}

func TestStartUninitialized(t *testing.T) {
	var svc *Service
	if err := svc.Start(context.Background()); err == nil {
		t.Fatalf("nil service should fail to start")
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("nil service stop should be noop: %v", err)
	}
}

// 需要真实 Redis：NEWSDESK_TEST_REDIS_URL=redis://127.0.0.1:6379/15
func TestStartReturnsWhenContextCanceled(t *testing.T) {
	redisURL := os.Getenv("NEWSDESK_TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("NEWSDESK_TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("parse redis url failed: %v", err)
	}
	host, portRaw, err := net.SplitHostPort(opts.Addr)
	if err != nil {
		t.Fatalf("split redis addr failed: %v", err)
	}
	port, _ := strconv.Atoi(portRaw)

	svc, err := NewService(&config.QueueConfig{
		Enabled:     true,
		Host:        host,
		Port:        port,
		Password:    opts.Password,
		DB:          opts.DB,
		Concurrency: 1,
	}, &Consumer{})
	if err != nil {
		t.Fatalf("new service failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned error: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatalf("worker did not stop after context cancel")
	}
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("second stop failed: %v", err)
	}
}
