package events

import (
	"context"
	"sync"

	"github.com/newsdesk/internal/logger"
)

const defaultBufferSize = 64

type memorySubscription struct {
	channels map[string]struct{}
	queue    chan Message
}

// MemoryBus 进程内事件总线，订阅者缓冲区满时丢弃消息
type MemoryBus struct {
	mu         sync.RWMutex
	subs       map[*memorySubscription]struct{}
	bufferSize int
	closed     bool
}

// NewMemoryBus 创建进程内事件总线
func NewMemoryBus(bufferSize int) *MemoryBus {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &MemoryBus{
		subs:       make(map[*memorySubscription]struct{}),
		bufferSize: bufferSize,
	}
}

// Publish 发布事件，不等待订阅者处理
func (b *MemoryBus) Publish(ctx context.Context, channel string, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}
	msg := Message{Channel: channel, Event: event}
	for sub := range b.subs {
		if _, ok := sub.channels[channel]; !ok {
			continue
		}
		select {
		case sub.queue <- msg:
		default:
			logger.Warnw("events_memory_subscriber_full", "channel", channel, "user_id", event.UserID)
		}
	}
	return nil
}

// Subscribe 订阅频道并在当前 goroutine 中处理消息
func (b *MemoryBus) Subscribe(ctx context.Context, channels []string, handler Handler) error {
	sub := &memorySubscription{
		channels: make(map[string]struct{}, len(channels)),
		queue:    make(chan Message, b.bufferSize),
	}
	for _, channel := range channels {
		sub.channels[channel] = struct{}{}
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.subs, sub)
		b.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-sub.queue:
			if !ok {
				return nil
			}
			dispatch(ctx, handler, msg)
		}
	}
}

// Close 关闭总线并结束所有订阅
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for sub := range b.subs {
		close(sub.queue)
	}
	return nil
}

func dispatch(ctx context.Context, handler Handler, msg Message) {
	if err := handler(ctx, msg); err != nil {
		logger.Warnw("events_handle_failed",
			"channel", msg.Channel,
			"action", msg.Event.Action,
			"user_id", msg.Event.UserID,
			"error", err,
		)
	}
}

func (b *MemoryBus) subscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
