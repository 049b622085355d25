package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/events"
)

type fakeService struct {
	name    string
	startFn func(ctx context.Context) error
	stopped atomic.Bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.startFn != nil {
		return s.startFn(ctx)
	}
	<-ctx.Done()
	return nil
}

func (s *fakeService) Stop(ctx context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{
		"":        ModeAll,
		" Posts ": ModePosts,
		"users":   ModeUsers,
		"LOGGING": ModeLogging,
		"worker":  ModeWorker,
		"all":     ModeAll,
	}
	for input, want := range cases {
		got, err := ParseMode(input)
		if err != nil {
			t.Fatalf("mode %q unexpected error: %v", input, err)
		}
		if got != want {
			t.Fatalf("mode %q want %s got %s", input, want, got)
		}
	}
	if _, err := ParseMode("api"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestRunnerStopsAllServicesAndRunsCleanup(t *testing.T) {
	failing := &fakeService{name: "failing", startFn: func(ctx context.Context) error {
		return errors.New("listen failed")
	}}
	blocking := &fakeService{name: "blocking"}

	var cleaned atomic.Int32
	runner := NewRunner(failing, blocking)
	runner.AddCleanup(func() error {
		cleaned.Add(1)
		return nil
	})

	err := runner.Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "listen failed" {
		t.Fatalf("runner should surface first service error, got %v", err)
	}
	if !failing.stopped.Load() || !blocking.stopped.Load() {
		t.Fatalf("all services should be stopped")
	}
	if cleaned.Load() != 1 {
		t.Fatalf("cleanup should run once, got %d", cleaned.Load())
	}
	if names := runner.ServiceNames(); len(names) != 2 || names[0] != "failing" {
		t.Fatalf("unexpected service names: %v", names)
	}
}

func TestRunnerCanceledContextIsCleanExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewRunner(&fakeService{name: "idle"}).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("canceled context should exit cleanly, got %v", err)
	}
}

func TestSubscriberServiceDeliversEvents(t *testing.T) {
	bus := events.NewMemoryBus(8)
	defer bus.Close()

	received := make(chan events.Message, 1)
	svc := NewSubscriberService("subscriber", bus, events.UserChannels(), func(ctx context.Context, msg events.Message) error {
		select {
		case received <- msg:
		default:
		}
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- svc.Start(context.Background()) }()

	event := events.NewUserEvent(constants.ActionUserCreated, "u-1", "a@x.com", time.Now())
	deadline := time.After(2 * time.Second)
	for {
		if err := bus.Publish(context.Background(), constants.ChannelUserCreated, event); err != nil {
			t.Fatalf("publish failed: %v", err)
		}
		select {
		case msg := <-received:
			if msg.Event.UserID != "u-1" {
				t.Fatalf("unexpected event: %+v", msg)
			}
			if err := svc.Stop(context.Background()); err != nil {
				t.Fatalf("stop failed: %v", err)
			}
			select {
			case err := <-done:
				if err != nil {
					t.Fatalf("start should return nil after stop, got %v", err)
				}
			case <-time.After(2 * time.Second):
				t.Fatalf("subscriber did not exit after stop")
			}
			return
		case <-deadline:
			t.Fatalf("event not delivered")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
