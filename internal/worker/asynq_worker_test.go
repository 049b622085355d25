package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/events"
	"github.com/newsdesk/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleEventDispatchesMessage(t *testing.T) {
	var got []events.Message
	consumer := &Consumer{handle: func(ctx context.Context, msg events.Message) error {
		got = append(got, msg)
		return nil
	}}

	task, err := queue.NewEventTask(queue.TaskUserLoggedIn, events.Event{Action: constants.ActionUserLoggedIn, UserID: "u-1"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleEvent(context.Background(), task); err != nil {
		t.Fatalf("handle event failed: %v", err)
	}
	if len(got) != 1 || got[0].Channel != constants.ChannelUserLoggedIn || got[0].Event.UserID != "u-1" {
		t.Fatalf("unexpected dispatched messages: %+v", got)
	}
}

func TestHandleEventBadPayloadSkipsRetry(t *testing.T) {
	consumer := &Consumer{handle: func(ctx context.Context, msg events.Message) error {
		t.Fatalf("handler must not run for invalid payload")
		return nil
	}}
	err := consumer.handleEvent(context.Background(), asynq.NewTask(queue.TaskUserCreated, []byte("{broken")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("want SkipRetry got %v", err)
	}
}

func TestHandleEventPropagatesHandlerError(t *testing.T) {
	sinkErr := errors.New("disk full")
	consumer := &Consumer{handle: func(ctx context.Context, msg events.Message) error {
		return sinkErr
	}}
	task, err := queue.NewEventTask(queue.TaskUserCreated, events.Event{UserID: "u-2"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleEvent(context.Background(), task); !errors.Is(err, sinkErr) {
		t.Fatalf("want sink error got %v", err)
	}
}

func TestRegisterAddsEventHandlers(t *testing.T) {
	consumer := &Consumer{handle: func(ctx context.Context, msg events.Message) error { return nil }}
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	for _, taskType := range queue.EventTaskTypes() {
		task, err := queue.NewEventTask(taskType, events.Event{UserID: "u"})
		if err != nil {
			t.Fatalf("new task failed: %v", err)
		}
		if err := mux.ProcessTask(context.Background(), task); err != nil {
			t.Fatalf("process %s failed: %v", taskType, err)
		}
	}
}
