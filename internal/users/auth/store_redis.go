// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// # Redis Implementation

// RedisRevocationStore keeps digests of logged-out refresh tokens in Redis.
// Entries carry a TTL equal to the token's remaining lifetime, so the set
// cleans itself up without a background sweeper.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore creates a Redis-backed [RevocationStore].
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

// Revoke marks a refresh token digest as unusable for the given duration.
func (store *RedisRevocationStore) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	key := constants.RedisPrefixRevokedToken + tokenHash
	if err := store.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revocation_store_set_failed: %w", err)
	}
	return nil
}

// IsRevoked reports whether a refresh token digest has been revoked.
func (store *RedisRevocationStore) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	key := constants.RedisPrefixRevokedToken + tokenHash
	count, err := store.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("revocation_store_check_failed: %w", err)
	}
	return count > 0, nil
}
