package app

import (
	"context"
	"errors"
	"sync"

	"github.com/newsdesk/internal/events"
)

// SubscriberService 把事件订阅包装为可运行服务
type SubscriberService struct {
	name       string
	subscriber events.Subscriber
	channels   []string
	handler    events.Handler

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSubscriberService 创建事件订阅服务
func NewSubscriberService(name string, subscriber events.Subscriber, channels []string, handler events.Handler) *SubscriberService {
	return &SubscriberService{
		name:       name,
		subscriber: subscriber,
		channels:   channels,
		handler:    handler,
	}
}

// Name 服务名称
func (s *SubscriberService) Name() string {
	if s == nil || s.name == "" {
		return "subscriber"
	}
	return s.name
}

// Start 阻塞订阅直到 Stop 或 ctx 结束
func (s *SubscriberService) Start(ctx context.Context) error {
	if s == nil || s.subscriber == nil || s.handler == nil {
		return errors.New("subscriber not initialized")
	}
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	err := s.subscriber.Subscribe(ctx, s.channels, s.handler)
	if errors.Is(err, events.ErrBusClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop 结束订阅
func (s *SubscriberService) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}
