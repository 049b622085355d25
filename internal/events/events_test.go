package events

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/newsdesk/internal/constants"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserEventFormatsTimestamp(t *testing.T) {
	at := time.Date(2024, 3, 1, 8, 30, 0, 123000000, time.FixedZone("x", 3600))
	event := NewUserEvent(constants.ActionUserCreated, "u-1", "a@x.com", at)

	assert.Equal(t, "2024-03-01T07:30:00.123Z", event.Timestamp)
	assert.Equal(t, constants.LogLevelInfo, event.Level)

	raw, err := Encode(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"user_created","level":"info","userId":"u-1","email":"a@x.com","timestamp":"2024-03-01T07:30:00.123Z"}`, string(raw))
}

func TestDecodeDefaultsLevel(t *testing.T) {
	event, err := Decode([]byte(`{"userId":"u-2","email":"b@x.com"}`))
	require.NoError(t, err)
	assert.Equal(t, "info", event.Level)
	assert.Equal(t, "u-2", event.UserID)

	_, err = Decode([]byte("not json"))
	assert.Error(t, err)
}

type collector struct {
	mu       sync.Mutex
	messages []Message
}

func (c *collector) handle(ctx context.Context, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	return nil
}

func (c *collector) snapshot() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

func TestMemoryBusDeliversSubscribedChannels(t *testing.T) {
	bus := NewMemoryBus(8)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := &collector{}
	done := make(chan error, 1)
	go func() {
		done <- bus.Subscribe(ctx, UserChannels(), got.handle)
	}()
	require.Eventually(t, func() bool { return bus.subscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(ctx, constants.ChannelUserCreated, Event{UserID: "u-1"}))
	require.NoError(t, bus.Publish(ctx, "other:channel", Event{UserID: "ignored"}))
	require.NoError(t, bus.Publish(ctx, constants.ChannelUserLoggedIn, Event{UserID: "u-1"}))

	require.Eventually(t, func() bool { return len(got.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	messages := got.snapshot()
	assert.Equal(t, constants.ChannelUserCreated, messages[0].Channel)
	assert.Equal(t, constants.ChannelUserLoggedIn, messages[1].Channel)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("subscribe did not return after cancel")
	}
}

func TestMemoryBusHandlerErrorDoesNotStopSubscription(t *testing.T) {
	bus := NewMemoryBus(8)
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	calls := 0
	go func() {
		_ = bus.Subscribe(ctx, UserChannels(), func(ctx context.Context, msg Message) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			return errors.New("sink failed")
		})
	}()
	require.Eventually(t, func() bool { return bus.subscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(ctx, constants.ChannelUserCreated, Event{}))
	require.NoError(t, bus.Publish(ctx, constants.ChannelUserCreated, Event{}))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 2
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryBusClosed(t *testing.T) {
	bus := NewMemoryBus(1)
	require.NoError(t, bus.Close())
	assert.ErrorIs(t, bus.Publish(context.Background(), constants.ChannelUserCreated, Event{}), ErrBusClosed)
	assert.ErrorIs(t, bus.Subscribe(context.Background(), UserChannels(), nil), ErrBusClosed)
}

type stubEnqueuer struct {
	channel string
	event   Event
}

func (s *stubEnqueuer) EnqueueEvent(ctx context.Context, channel string, event Event) error {
	s.channel = channel
	s.event = event
	return nil
}

func TestQueueBusEnqueues(t *testing.T) {
	enqueuer := &stubEnqueuer{}
	bus := NewQueueBus(enqueuer)
	require.NoError(t, bus.Publish(context.Background(), constants.ChannelUserLoggedIn, Event{UserID: "u-9"}))
	assert.Equal(t, constants.ChannelUserLoggedIn, enqueuer.channel)
	assert.Equal(t, "u-9", enqueuer.event.UserID)

	var empty *QueueBus
	assert.ErrorIs(t, empty.Publish(context.Background(), "x", Event{}), ErrBusClosed)
}

// 需要真实 Redis：NEWSDESK_TEST_REDIS_URL=redis://127.0.0.1:6379/15
func TestRedisBusRoundTrip(t *testing.T) {
	redisURL := os.Getenv("NEWSDESK_TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("NEWSDESK_TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	bus := NewRedisBus(client)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := &collector{}
	go func() {
		_ = bus.Subscribe(ctx, UserChannels(), got.handle)
	}()

	require.Eventually(t, func() bool {
		_ = bus.Publish(ctx, constants.ChannelUserCreated, Event{UserID: "u-redis", Email: "r@x.com"})
		return len(got.snapshot()) > 0
	}, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, "u-redis", got.snapshot()[0].Event.UserID)
}
