package notifications

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_PublishUser(t *testing.T) {
	// Notifier with nil Redis should return nil error (fail-open/noop)
	n := NewNotifier(nil)
	err := n.PublishUser(context.Background(), 1, "test payload")
	assert.NoError(t, err)
}

func TestNotifier_PublishFeedEvent_NilClient(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishFeedEvent(context.Background(), "test payload"))
}

func TestUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		userID   uint
		expected string
	}{
		{1, "notifications:user:1"},
		{100, "notifications:user:100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, UserChannel(tt.userID))
	}
}

func TestParseUserChannel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		channel string
		userID  uint
		ok      bool
	}{
		{"notifications:user:1", 1, true},
		{"notifications:user:4200", 4200, true},
		{"notifications:user:abc", 0, false},
		{"feed:events", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		id, ok := ParseUserChannel(tt.channel)
		assert.Equal(t, tt.ok, ok, tt.channel)
		assert.Equal(t, tt.userID, id, tt.channel)
	}
}

func TestNotifier_PatternSubscriber_RoutesFeedAndUserEvents(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type message struct {
		channel string
		payload string
	}
	messages := make(chan message, 4)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(channel, payload string) {
		messages <- message{channel, payload}
	}))

	require.NoError(t, n.PublishFeedEvent(context.Background(), "status-created"))
	require.NoError(t, n.PublishUser(context.Background(), 7, "your-status-was-liked"))

	got := map[string]string{}
	for i := 0; i < 2; i++ {
		select {
		case msg := <-messages:
			got[msg.channel] = msg.payload
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for subscriber messages")
		}
	}
	assert.Equal(t, "status-created", got[FeedChannel])
	assert.Equal(t, "your-status-was-liked", got["notifications:user:7"])
}

func TestNotifier_StartPatternSubscriber_StopsOnCancel(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var received int32
	payloads := make(chan string, 2)
	require.NoError(t, n.StartPatternSubscriber(ctx, func(_ string, payload string) {
		atomic.AddInt32(&received, 1)
		payloads <- payload
	}))

	require.NoError(t, n.PublishFeedEvent(context.Background(), "before-cancel"))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)

	// Drain the pre-cancel message to avoid false positives.
	select {
	case <-payloads:
	default:
	}

	require.NoError(t, n.PublishFeedEvent(context.Background(), "after-cancel"))
	assert.Never(t, func() bool {
		select {
		case payload := <-payloads:
			return payload == "after-cancel"
		default:
			return false
		}
	}, 200*time.Millisecond, 10*time.Millisecond)
}
