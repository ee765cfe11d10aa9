// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/users/auth"
)

/*
TestRedisRevocationStore verifies the revoke/check round-trip and that
entries expire with the token's remaining lifetime.
*/
func TestRedisRevocationStore(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	store := auth.NewRedisRevocationStore(client)
	ctx := context.Background()

	// 1. An unknown digest is not revoked
	revoked, err := store.IsRevoked(ctx, "digest-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	// 2. Revoking makes it visible
	require.NoError(t, store.Revoke(ctx, "digest-1", time.Hour))
	revoked, err = store.IsRevoked(ctx, "digest-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// 3. The entry disappears once the token's lifetime has passed
	server.FastForward(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "digest-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
