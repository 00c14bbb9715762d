// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

/*
Package resolve turns stored manga and chapter identifiers into canonical
chapter and page lists.

# Cascade Model

Chapter resolution tries the primary metadata provider first, corrects stale
manga IDs through a title search, and falls back to the scrape mirror. Page
resolution walks quality tiers on the requested source before dropping to the
community upload index. Every step runs only when the previous one produced
nothing.

The shared TTL cache sits in front of both resolutions. Provider failures are
logged and downgraded to empty results so that one unreachable upstream never
aborts a cascade that another step could still satisfy.
*/
package resolve

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"github.com/GYCODES/manga-translate/internal/core/source"
	"github.com/GYCODES/manga-translate/internal/platform/cache"
)

const (
	FieldMangaID = "manga_id"
	FieldSource  = "source"
	FieldChapter = "chapter"
)

// # Resolver

// Resolver orchestrates providers and the cache into canonical lists.
type Resolver struct {
	providers source.Set
	cache     cache.Cache
	logger    *slog.Logger
}

// NewResolver constructs a [Resolver] over the configured provider set.
func NewResolver(providers source.Set, store cache.Cache, logger *slog.Logger) *Resolver {
	return &Resolver{
		providers: providers,
		cache:     store,
		logger:    logger,
	}
}

// degraded records a provider failure that the cascade absorbs as an empty
// result.
func (r *Resolver) degraded(ctx context.Context, provider, operation string, err error) {
	r.logger.WarnContext(ctx, "provider_degraded",
		slog.String("provider", provider),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// # List Normalization

// sortChapters orders a chapter list ascending by numeric chapter number.
// Numbers that do not parse sort after all numeric ones, alphabetically.
func sortChapters(refs []source.ChapterRef) {
	sort.SliceStable(refs, func(i, j int) bool {
		left, leftErr := strconv.ParseFloat(refs[i].Number, 64)
		right, rightErr := strconv.ParseFloat(refs[j].Number, 64)

		switch {
		case leftErr == nil && rightErr == nil:
			return left < right
		case leftErr == nil:
			return true
		case rightErr == nil:
			return false
		default:
			return refs[i].Number < refs[j].Number
		}
	})
}

// normalizeScraped shapes a mirror chapter list for output: entries without
// a parsed number get one assigned from their position, placeholders are
// dropped, and duplicate numbers keep their first occurrence.
func normalizeScraped(refs []source.ChapterRef) []source.ChapterRef {
	normalized := make([]source.ChapterRef, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))

	for i, ref := range refs {
		if ref.Number == "" {
			ref.Number = strconv.Itoa(i + 1)
		}
		if source.IsPlaceholderNumber(ref.Number) {
			continue
		}
		if _, duplicate := seen[ref.Number]; duplicate {
			continue
		}

		seen[ref.Number] = struct{}{}
		normalized = append(normalized, ref)
	}

	return normalized
}
