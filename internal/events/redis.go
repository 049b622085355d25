package events

import (
	"context"
	"fmt"

	"github.com/newsdesk/internal/logger"

	"github.com/redis/go-redis/v9"
)

// RedisBus 基于 Redis Pub/Sub 的事件总线，投递语义为至多一次
type RedisBus struct {
	client redis.UniversalClient
}

// NewRedisBus 创建 Redis 事件总线
func NewRedisBus(client redis.UniversalClient) *RedisBus {
	return &RedisBus{client: client}
}

// Publish 发布事件
func (b *RedisBus) Publish(ctx context.Context, channel string, event Event) error {
	if b == nil || b.client == nil {
		return ErrBusClosed
	}
	payload, err := Encode(event)
	if err != nil {
		return fmt.Errorf("encode event failed: %w", err)
	}
	return b.client.Publish(ctx, channel, payload).Err()
}

// Subscribe 订阅频道直到 ctx 结束
func (b *RedisBus) Subscribe(ctx context.Context, channels []string, handler Handler) error {
	if b == nil || b.client == nil {
		return ErrBusClosed
	}
	pubsub := b.client.Subscribe(ctx, channels...)
	defer pubsub.Close()

	// 等待订阅确认，连接失败时尽早返回
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe failed: %w", err)
	}
	logger.Infow("events_redis_subscribed", "channels", channels)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-messages:
			if !ok {
				return nil
			}
			event, err := Decode([]byte(raw.Payload))
			if err != nil {
				logger.Warnw("events_redis_decode_failed", "channel", raw.Channel, "error", err)
				continue
			}
			dispatch(ctx, handler, Message{Channel: raw.Channel, Event: event})
		}
	}
}
