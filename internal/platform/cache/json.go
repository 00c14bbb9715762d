// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package cache

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/GYCODES/manga-translate/internal/platform/ctxutil"
)

// GetJSON fetches key and decodes the stored JSON into T.
//
// Any backend or decode failure degrades to a miss: a cache problem must only
// ever cost a recomputation, never fail a resolution.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var decoded T

	raw, found, err := c.Get(ctx, key)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "cache_get_degraded",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return decoded, false
	}
	if !found {
		return decoded, false
	}

	if err := json.Unmarshal(raw, &decoded); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "cache_decode_degraded",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return decoded, false
	}

	return decoded, true
}

// SetJSON encodes value as JSON and stores it under key.
//
// Storage is best-effort: failures are logged and swallowed.
func SetJSON[T any](ctx context.Context, c Cache, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "cache_encode_degraded",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return
	}

	if err := c.Set(ctx, key, raw); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "cache_set_degraded",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
