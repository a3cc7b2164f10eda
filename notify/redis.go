// Package notify delivers committed alerts over redis pub/sub, one channel
// per recipient.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/glucotrack/glucotrack-api/alert"
	"github.com/glucotrack/glucotrack-api/logger"
)

const channelPrefix = "glucotrack:alerts"

// Channel is the pub/sub channel a recipient listens on.
func Channel(recipientID uint) string {
	return fmt.Sprintf("%s:%d", channelPrefix, recipientID)
}

// RedisNotifier publishes alert events. A nil client turns it into a no-op,
// which is how the service runs without redis.
type RedisNotifier struct {
	client *redis.Client
	log    *logger.Logger
}

func NewRedisNotifier(client *redis.Client, log *logger.Logger) *RedisNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisNotifier{client: client, log: log.With("component", "notify")}
}

func (n *RedisNotifier) AlertCreated(ctx context.Context, ev alert.Event) error {
	if n.client == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode alert event: %w", err)
	}
	receivers, err := n.client.Publish(ctx, Channel(ev.RecipientID), string(payload)).Result()
	if err != nil {
		return fmt.Errorf("publish alert %d: %w", ev.AlertID, err)
	}
	n.log.Debug("alert published", "alert_id", ev.AlertID, "recipient_id", ev.RecipientID, "receivers", receivers)
	return nil
}

// Subscribe opens a subscription on the recipient's channel. The caller
// closes the returned PubSub.
func (n *RedisNotifier) Subscribe(ctx context.Context, recipientID uint) (*redis.PubSub, error) {
	if n.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return n.client.Subscribe(ctx, Channel(recipientID)), nil
}

var _ alert.Notifier = (*RedisNotifier)(nil)
