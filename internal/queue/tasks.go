package queue

import (
	"fmt"

	"github.com/newsdesk/internal/constants"
	"github.com/newsdesk/internal/events"

	"github.com/hibiken/asynq"
)

const (
	// TaskUserCreated 用户注册事件任务
	TaskUserCreated = constants.ChannelUserCreated
	// TaskUserLoggedIn 用户登录事件任务
	TaskUserLoggedIn = constants.ChannelUserLoggedIn
)

// EventTaskTypes 所有事件任务类型
func EventTaskTypes() []string {
	return []string{TaskUserCreated, TaskUserLoggedIn}
}

// NewEventTask 创建事件任务，任务类型即事件频道
func NewEventTask(channel string, event events.Event) (*asynq.Task, error) {
	if !isEventTaskType(channel) {
		return nil, fmt.Errorf("unsupported event task type: %s", channel)
	}
	body, err := events.Encode(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(channel, body), nil
}

// ParseEventTask 从任务还原事件消息
func ParseEventTask(task *asynq.Task) (events.Message, error) {
	event, err := events.Decode(task.Payload())
	if err != nil {
		return events.Message{}, err
	}
	return events.Message{Channel: task.Type(), Event: event}, nil
}

func isEventTaskType(taskType string) bool {
	for _, candidate := range EventTaskTypes() {
		if candidate == taskType {
			return true
		}
	}
	return false
}
