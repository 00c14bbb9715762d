// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GYCODES/manga-translate/internal/platform/cache"
)

// newRedisCache spins up a miniredis server and wraps it in the Redis backend.
func newRedisCache(t *testing.T, ttl time.Duration) (*cache.Redis, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedis(client, ttl), server
}

/*
TestRedis_SetGet tests basic store and retrieve round trips against miniredis.
*/
func TestRedis_SetGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t, time.Minute)

	require.NoError(t, c.Set(ctx, "pages:mangadex:ch-1", []byte(`["p1.png"]`)))

	value, found, err := c.Get(ctx, "pages:mangadex:ch-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`["p1.png"]`), value)
}

/*
TestRedis_MissingKey ensures unknown keys report a clean miss, not an error.
*/
func TestRedis_MissingKey(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t, time.Minute)

	value, found, err := c.Get(ctx, "pages:mirror:nothing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
}

/*
TestRedis_Expiry verifies per-key TTL handling via simulated clock advance.
*/
func TestRedis_Expiry(t *testing.T) {
	ctx := context.Background()
	c, server := newRedisCache(t, 10*time.Minute)

	require.NoError(t, c.Set(ctx, "chapters:abc:berserk", []byte("payload")))

	// Jump past the TTL without sleeping.
	server.FastForward(11 * time.Minute)

	_, found, err := c.Get(ctx, "chapters:abc:berserk")
	require.NoError(t, err)
	assert.False(t, found)
}

/*
TestRedis_Delete covers explicit removal including double deletes.
*/
func TestRedis_Delete(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t, time.Minute)

	require.NoError(t, c.Set(ctx, "key", []byte("value")))
	require.NoError(t, c.Delete(ctx, "key"))

	_, found, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing key must not error.
	require.NoError(t, c.Delete(ctx, "key"))
}
