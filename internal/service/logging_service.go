package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/events"
	"github.com/newsdesk/internal/logger"
)

const (
	logEntryRecordedMessage = "Log entry recorded"
	defaultLogEntryMessage  = "log_entry"
)

// LogSink 审计日志输出
type LogSink interface {
	Write(level string, message string, fields map[string]interface{}) error
}

// LogResult 日志写入结果
type LogResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoggingService 审计日志服务，接收 HTTP 写入与用户事件
type LoggingService struct {
	sink LogSink
	now  func() time.Time
}

// NewLoggingService 创建日志服务
func NewLoggingService(sink LogSink) *LoggingService {
	return &LoggingService{sink: sink, now: time.Now}
}

// LogMessage 写入一条日志，level 为 error 时同时进入错误日志
func (s *LoggingService) LogMessage(ctx context.Context, data map[string]interface{}) (*LogResult, error) {
	if len(data) == 0 {
		return nil, ErrLogDataRequired
	}
	if s.sink == nil {
		return nil, ErrLogSinkMissing
	}

	entry := make(map[string]interface{}, len(data)+1)
	entry["timestamp"] = s.now().UTC().Format(events.TimestampLayout)
	for key, value := range data {
		entry[key] = value
	}

	level := constants.LogLevelInfo
	if raw, ok := entry["level"].(string); ok && strings.EqualFold(strings.TrimSpace(raw), constants.LogLevelError) {
		level = constants.LogLevelError
	}
	message := defaultLogEntryMessage
	if raw, ok := entry["message"].(string); ok && strings.TrimSpace(raw) != "" {
		message = raw
	} else if raw, ok := entry["action"].(string); ok && strings.TrimSpace(raw) != "" {
		message = raw
	}
	delete(entry, "level")
	delete(entry, "message")

	if err := s.sink.Write(level, message, entry); err != nil {
		return nil, fmt.Errorf("write log entry failed: %w", err)
	}
	return &LogResult{Success: true, Message: logEntryRecordedMessage}, nil
}

// LogUserCreation 记录用户注册事件
func (s *LoggingService) LogUserCreation(ctx context.Context, event events.Event) (*LogResult, error) {
	return s.logUserEvent(ctx, constants.ActionUserCreated, event)
}

// LogUserLogin 记录用户登录事件
func (s *LoggingService) LogUserLogin(ctx context.Context, event events.Event) (*LogResult, error) {
	return s.logUserEvent(ctx, constants.ActionUserLoggedIn, event)
}

// HandleEvent 作为事件订阅的处理函数
func (s *LoggingService) HandleEvent(ctx context.Context, msg events.Message) error {
	var err error
	switch msg.Channel {
	case constants.ChannelUserCreated:
		_, err = s.LogUserCreation(ctx, msg.Event)
	case constants.ChannelUserLoggedIn:
		_, err = s.LogUserLogin(ctx, msg.Event)
	default:
		logger.Warnw("logging_event_channel_unknown", "channel", msg.Channel)
		return nil
	}
	if err != nil {
		return err
	}
	logger.Debugw("logging_event_recorded", "channel", msg.Channel, "user_id", msg.Event.UserID)
	return nil
}

func (s *LoggingService) logUserEvent(ctx context.Context, action string, event events.Event) (*LogResult, error) {
	level := event.Level
	if level == "" {
		level = constants.LogLevelInfo
	}
	data := map[string]interface{}{
		"action": action,
		"level":  level,
		"userId": event.UserID,
		"email":  event.Email,
	}
	if event.Timestamp != "" {
		data["timestamp"] = event.Timestamp
	}
	return s.LogMessage(ctx, data)
}
