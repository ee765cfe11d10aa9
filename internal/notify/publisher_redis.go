// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// # Redis Push Channel

// RedisPublisher pushes notifications over a per-user Redis pub/sub channel.
// WebSocket gateways subscribe to "notify:user:<id>" and forward the JSON
// payloads to connected browsers.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a Redis-backed [Publisher].
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish sends the notification to the recipient's channel. A channel with
// no subscribers is not an error; the row is already persisted and will be
// fetched on the next listing.
func (publisher *RedisPublisher) Publish(ctx context.Context, notification *Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("notify_publish_encode_failed: %w", err)
	}

	channel := constants.RedisChannelNotify + notification.UserID
	if err := publisher.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("notify_publish_failed: %w", err)
	}
	return nil
}
