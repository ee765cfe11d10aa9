// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/notify"
	"github.com/taibuivan/inkwell/internal/platform/constants"
)

/*
TestRedisPublisher_Publish verifies the JSON payload lands on the
recipient's per-user channel.
*/
func TestRedisPublisher_Publish(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	// 1. Subscribe to the recipient's channel before publishing
	subscription := client.Subscribe(context.Background(), constants.RedisChannelNotify+"user-1")
	defer subscription.Close()
	_, err := subscription.Receive(context.Background())
	require.NoError(t, err)

	// 2. Publish a notification
	publisher := notify.NewRedisPublisher(client)
	sent := &notify.Notification{
		ID:        "notification-1",
		UserID:    "user-1",
		Kind:      notify.KindComment,
		Message:   "ada commented on your article",
		SubjectID: "article-1",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, publisher.Publish(context.Background(), sent))

	// 3. The subscriber receives the same notification as JSON
	select {
	case message := <-subscription.Channel():
		var received notify.Notification
		require.NoError(t, json.Unmarshal([]byte(message.Payload), &received))
		assert.Equal(t, sent.ID, received.ID)
		assert.Equal(t, sent.Kind, received.Kind)
		assert.Equal(t, sent.Message, received.Message)
	case <-time.After(time.Second):
		t.Fatal("no message received on notification channel")
	}
}

/*
TestRedisPublisher_NoSubscribers verifies that pushing into an empty channel
is not an error.
*/
func TestRedisPublisher_NoSubscribers(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	publisher := notify.NewRedisPublisher(client)
	err := publisher.Publish(context.Background(), &notify.Notification{
		ID:     "notification-1",
		UserID: "user-nobody",
		Kind:   notify.KindReply,
	})

	assert.NoError(t, err)
}
