// Package notifications delivers realtime user events over Redis pub/sub.
// Stored notifications live in the repository layer; this package only
// fans events out to interested subscribers.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campusnet/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Event names published on user channels.
const (
	EventFriendRequest = "friend_request"
	EventFriendAccept  = "friend_accept"
	EventNewPost       = "new_post"
)

const userChannelPrefix = "events:user:"

// UserChannel returns the pub/sub channel for a user's event stream.
func UserChannel(userID uint) string {
	return fmt.Sprintf("%s%d", userChannelPrefix, userID)
}

// Event is the wire format published on user channels.
type Event struct {
	Event     string      `json:"event"`
	UserID    uint        `json:"user_id"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Publisher pushes events toward a single user's channel.
type Publisher interface {
	PublishUser(ctx context.Context, userID uint, event string, data interface{}) error
}

// RedisNotifier publishes events through a Redis client. A nil client
// disables delivery so callers never have to branch on availability.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier returns a notifier backed by the given client.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) PublishUser(ctx context.Context, userID uint, event string, data interface{}) error {
	if n == nil || n.client == nil {
		return nil
	}

	payload, err := json.Marshal(Event{
		Event:     event,
		UserID:    userID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := n.client.Publish(ctx, UserChannel(userID), payload).Err(); err != nil {
		middleware.RedisErrors.WithLabelValues("publish").Inc()
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// StartPatternSubscriber consumes every user channel and hands decoded
// events to fn until the context is canceled. Used by operational tooling
// that tails the event stream.
func (n *RedisNotifier) StartPatternSubscriber(ctx context.Context, fn func(Event)) error {
	if n == nil || n.client == nil {
		return fmt.Errorf("redis client is not available")
	}

	sub := n.client.PSubscribe(ctx, userChannelPrefix+"*")
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					middleware.Logger.Warn("dropping malformed event", "channel", msg.Channel, "error", err)
					continue
				}
				fn(event)
			}
		}
	}()
	return nil
}
