package worker

import (
	"context"
	"fmt"

	"github.com/newsdesk/internal/events"
	"github.com/newsdesk/internal/logger"
	"github.com/newsdesk/internal/provider"
	"github.com/newsdesk/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者，把用户事件交给日志服务
type Consumer struct {
	handle events.Handler
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	if c == nil || c.LoggingService == nil {
		return &Consumer{}
	}
	return &Consumer{handle: c.LoggingService.HandleEvent}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	for _, taskType := range queue.EventTaskTypes() {
		mux.HandleFunc(taskType, c.handleEvent)
	}
}

func (c *Consumer) handleEvent(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_event_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	if c.handle == nil {
		logger.Warnw("worker_event_skip_handler_nil", "task_type", task.Type())
		return nil
	}
	msg, err := queue.ParseEventTask(task)
	if err != nil {
		logger.Warnw("worker_event_unmarshal_failed", "task_type", task.Type(), "error", err)
		return fmt.Errorf("decode event task: %v: %w", err, asynq.SkipRetry)
	}
	if err := c.handle(ctx, msg); err != nil {
		logger.Warnw("worker_event_handle_failed",
			"task_type", task.Type(),
			"user_id", msg.Event.UserID,
			"error", err,
		)
		return err
	}
	return nil
}
