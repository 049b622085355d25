// Package events 用户事件的发布与订阅，支持进程内、Redis Pub/Sub 与异步队列三种传输。
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/newsdesk/internal/constants"
)

// TimestampLayout 事件时间格式（UTC 毫秒精度）
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrBusClosed 总线已关闭
var ErrBusClosed = errors.New("events: bus closed")

// Event 用户事件负载
type Event struct {
	Action    string `json:"action"`
	Level     string `json:"level"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// Message 带频道的事件
type Message struct {
	Channel string
	Event   Event
}

// Handler 事件处理函数
type Handler func(ctx context.Context, msg Message) error

// Publisher 事件发布者
type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
}

// Subscriber 事件订阅者，Subscribe 阻塞直到 ctx 结束
type Subscriber interface {
	Subscribe(ctx context.Context, channels []string, handler Handler) error
}

// NewUserEvent 构造用户事件
func NewUserEvent(action, userID, email string, at time.Time) Event {
	return Event{
		Action:    action,
		Level:     constants.LogLevelInfo,
		UserID:    userID,
		Email:     email,
		Timestamp: at.UTC().Format(TimestampLayout),
	}
}

// Encode 序列化事件
func Encode(event Event) ([]byte, error) {
	return json.Marshal(event)
}

// Decode 反序列化事件，缺省级别为 info
func Decode(raw []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return Event{}, err
	}
	if event.Level == "" {
		event.Level = constants.LogLevelInfo
	}
	return event, nil
}

// UserChannels 日志服务订阅的频道
func UserChannels() []string {
	return []string{constants.ChannelUserCreated, constants.ChannelUserLoggedIn}
}
