// Package redispub implements the ChangePublisher port on top of Redis
// pub/sub. Each order state change is published to the order's own channel so
// storefront and dashboard subscribers can follow single orders.
package redispub

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrClientIsRequired is returned when constructing a publisher without a
// Redis client.
var ErrClientIsRequired = errors.New("redis client is required")

// RedisChangePublisher publishes order state change payloads to Redis
// channels. Delivery is at-least-once from the consumer's perspective;
// subscribers not connected at publish time miss the message, which is
// acceptable for UI notification traffic.
type RedisChangePublisher struct {
	client *redis.Client
}

// NewRedisChangePublisher creates a publisher around an existing client.
func NewRedisChangePublisher(client *redis.Client) (*RedisChangePublisher, error) {
	if client == nil {
		return nil, ErrClientIsRequired
	}

	return &RedisChangePublisher{client: client}, nil
}

// Publish sends the payload to the channel.
func (p *RedisChangePublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}
