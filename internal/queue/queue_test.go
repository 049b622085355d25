package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/newsdesk/internal/config"
	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/events"
)

func TestEventTaskRoundTrip(t *testing.T) {
	event := events.Event{Action: constants.ActionUserCreated, UserID: "u-1", Email: "a@x.com", Timestamp: "2024-01-01T00:00:00.000Z"}
	task, err := NewEventTask(TaskUserCreated, event)
	if err != nil {
		t.Fatalf("new event task failed: %v", err)
	}
	if task.Type() != constants.ChannelUserCreated {
		t.Fatalf("task type want %s got %s", constants.ChannelUserCreated, task.Type())
	}

	msg, err := ParseEventTask(task)
	if err != nil {
		t.Fatalf("parse event task failed: %v", err)
	}
	if msg.Channel != TaskUserCreated || msg.Event.UserID != "u-1" || msg.Event.Level != constants.LogLevelInfo {
		t.Fatalf("unexpected message: %+v", msg)
	}

	if _, err := NewEventTask("order:paid", event); err == nil {
		t.Fatalf("expected unsupported task type error")
	}
}

func TestDisabledClientRejectsEvents(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	err = client.EnqueueEvent(context.Background(), TaskUserCreated, events.Event{})
	if !errors.Is(err, events.ErrBusClosed) {
		t.Fatalf("want ErrBusClosed got %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
