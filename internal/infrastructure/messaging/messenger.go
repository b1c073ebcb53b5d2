package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/greenlens/backend/internal/domain"
	"github.com/greenlens/backend/internal/logger"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultChannel is the pub/sub channel extension clients subscribe to
const DefaultChannel = "greenlens:messages"

// NoopMessenger accepts every message and drops it.
// Used where no message channel is configured.
type NoopMessenger struct {
	log *logrus.Entry
}

// NewNoopMessenger creates a messenger that only logs
func NewNoopMessenger() *NoopMessenger {
	return &NoopMessenger{log: logger.WithComponent("messaging")}
}

// Send logs the message and returns nil
func (m *NoopMessenger) Send(ctx context.Context, msg domain.Message) error {
	m.log.WithField("action", msg.Action).Debug("Message channel disabled, dropping message")
	return nil
}

// RedisMessenger publishes messages as JSON on a Redis pub/sub channel
type RedisMessenger struct {
	client  *redis.Client
	channel string
	log     *logrus.Entry
}

// NewRedisMessenger creates a messenger publishing on channel (DefaultChannel if empty)
func NewRedisMessenger(client *redis.Client, channel string) *RedisMessenger {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisMessenger{
		client:  client,
		channel: channel,
		log:     logger.WithComponent("messaging"),
	}
}

// Channel returns the pub/sub channel name
func (m *RedisMessenger) Channel() string {
	return m.channel
}

// Send publishes msg. Having no subscribers is not an error.
func (m *RedisMessenger) Send(ctx context.Context, msg domain.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	receivers, err := m.client.Publish(ctx, m.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMessagingUnavailable, err)
	}

	m.log.WithFields(logrus.Fields{
		"action":    msg.Action,
		"channel":   m.channel,
		"receivers": receivers,
	}).Debug("Published message")

	return nil
}
