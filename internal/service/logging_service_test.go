package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/events"
)

type recordedLog struct {
	level   string
	message string
	fields  map[string]interface{}
}

type recordingSink struct {
	entries []recordedLog
	err     error
}

func (s *recordingSink) Write(level string, message string, fields map[string]interface{}) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, recordedLog{level: level, message: message, fields: fields})
	return nil
}

func TestLogMessage(t *testing.T) {
	sink := &recordingSink{}
	svc := NewLoggingService(sink)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	result, err := svc.LogMessage(context.Background(), map[string]interface{}{
		"message": "disk almost full",
		"level":   "ERROR",
		"host":    "web-1",
	})
	if err != nil {
		t.Fatalf("log message failed: %v", err)
	}
	if !result.Success || result.Message != "Log entry recorded" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(sink.entries) != 1 {
		t.Fatalf("want 1 entry got %d", len(sink.entries))
	}
	entry := sink.entries[0]
	if entry.level != constants.LogLevelError || entry.message != "disk almost full" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.fields["host"] != "web-1" || entry.fields["timestamp"] != "2024-01-02T03:04:05.000Z" {
		t.Fatalf("unexpected fields: %+v", entry.fields)
	}
	if _, ok := entry.fields["level"]; ok {
		t.Fatalf("level should not be duplicated in fields")
	}
}

func TestLogMessageDefaultsAndErrors(t *testing.T) {
	sink := &recordingSink{}
	svc := NewLoggingService(sink)
	ctx := context.Background()

	if _, err := svc.LogMessage(ctx, nil); !errors.Is(err, ErrLogDataRequired) {
		t.Fatalf("want ErrLogDataRequired got %v", err)
	}

	if _, err := svc.LogMessage(ctx, map[string]interface{}{"level": "warn", "timestamp": "custom"}); err != nil {
		t.Fatalf("log failed: %v", err)
	}
	entry := sink.entries[0]
	if entry.level != constants.LogLevelInfo || entry.message != defaultLogEntryMessage {
		t.Fatalf("non-error levels must fall back to info: %+v", entry)
	}
	if entry.fields["timestamp"] != "custom" {
		t.Fatalf("caller timestamp should win, got %v", entry.fields["timestamp"])
	}

	sink.err = errors.New("disk full")
	if _, err := svc.LogMessage(ctx, map[string]interface{}{"message": "x"}); err == nil {
		t.Fatalf("expected sink error to surface")
	}

	if _, err := NewLoggingService(nil).LogMessage(ctx, map[string]interface{}{"message": "x"}); !errors.Is(err, ErrLogSinkMissing) {
		t.Fatalf("want ErrLogSinkMissing got %v", err)
	}
}

func TestHandleEventRoutesChannels(t *testing.T) {
	sink := &recordingSink{}
	svc := NewLoggingService(sink)
	ctx := context.Background()
	event := events.Event{UserID: "u-1", Email: "a@x.com", Timestamp: "2024-01-01T00:00:00.000Z"}

	if err := svc.HandleEvent(ctx, events.Message{Channel: constants.ChannelUserCreated, Event: event}); err != nil {
		t.Fatalf("handle created failed: %v", err)
	}
	if err := svc.HandleEvent(ctx, events.Message{Channel: constants.ChannelUserLoggedIn, Event: event}); err != nil {
		t.Fatalf("handle login failed: %v", err)
	}
	if err := svc.HandleEvent(ctx, events.Message{Channel: "other", Event: event}); err != nil {
		t.Fatalf("unknown channel should be ignored: %v", err)
	}

	if len(sink.entries) != 2 {
		t.Fatalf("want 2 entries got %d", len(sink.entries))
	}
	if sink.entries[0].message != constants.ActionUserCreated || sink.entries[1].message != constants.ActionUserLoggedIn {
		t.Fatalf("unexpected messages: %s / %s", sink.entries[0].message, sink.entries[1].message)
	}
	fields := sink.entries[0].fields
	if fields["userId"] != "u-1" || fields["email"] != "a@x.com" || fields["timestamp"] != event.Timestamp {
		t.Fatalf("unexpected fields: %+v", fields)
	}

	sink.err = errors.New("write failed")
	if err := svc.HandleEvent(ctx, events.Message{Channel: constants.ChannelUserCreated, Event: event}); err == nil {
		t.Fatalf("expected handler error")
	}
}
