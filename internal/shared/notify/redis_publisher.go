// Package notify publishes withdrawal workflow events for the out-of-scope
// notification consumers (the marketplace UI's notification bell).
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher fans events out on a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = "payout-ledger:events"
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Publish marshals the event to JSON and publishes it. Delivery is at most
// once; subscribers absent at publish time miss the event.
func (p *RedisPublisher) Publish(ctx context.Context, event any) error {
	if p == nil || p.client == nil {
		return errors.New("notify: redis publisher is not initialized")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: failed to marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("notify: failed to publish event: %w", err)
	}

	return nil
}
