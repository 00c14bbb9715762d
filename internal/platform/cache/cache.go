// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

/*
Package cache provides the short-lived resolution cache shared by the
chapter and page resolvers.

Two interchangeable backends exist behind the [Cache] interface:

  - Memory: a mutex-guarded in-process map, used when no REDIS_URL is set.
  - Redis: a shared store for multi-replica deployments.

Entries carry a fixed TTL chosen at construction time. The cache never
serves stale data: an expired entry behaves exactly like a missing one.
*/
package cache

import "context"

// Cache stores serialized resolution results under string keys.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key. The boolean reports whether a
	// fresh entry existed; expired entries are treated as absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, overwriting any existing entry and
	// restarting its TTL.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the entry under key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}
