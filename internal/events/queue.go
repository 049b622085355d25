package events

import "context"

// TaskEnqueuer 将事件写入异步队列
type TaskEnqueuer interface {
	EnqueueEvent(ctx context.Context, channel string, event Event) error
}

// QueueBus 通过异步队列投递事件，由 worker 消费
type QueueBus struct {
	enqueuer TaskEnqueuer
}

// NewQueueBus 创建队列事件发布者
func NewQueueBus(enqueuer TaskEnqueuer) *QueueBus {
	return &QueueBus{enqueuer: enqueuer}
}

// Publish 入队事件
func (b *QueueBus) Publish(ctx context.Context, channel string, event Event) error {
	if b == nil || b.enqueuer == nil {
		return ErrBusClosed
	}
	return b.enqueuer.EnqueueEvent(ctx, channel, event)
}
