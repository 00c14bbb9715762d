// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package resolve

import (
	"context"
	"log/slog"

	"github.com/GYCODES/manga-translate/internal/core/source"
	"github.com/GYCODES/manga-translate/internal/platform/cache"
	"github.com/GYCODES/manga-translate/internal/platform/constants"
	"github.com/GYCODES/manga-translate/internal/platform/metrics"
)

// ChapterCacheKey builds the cache key for one chapter resolution.
func ChapterCacheKey(mangaID, title string) string {
	return constants.CachePrefixChapters + mangaID + ":" + title
}

// # Chapter Resolution

/*
Chapters resolves a manga into its canonical chapter list.

Cascade:
 1. Cache lookup under "chapters:{id}:{title}".
 2. Primary provider by the stored ID; any result is canonical.
 3. Stale-ID correction: when the stored ID yields nothing, a title search
    may produce the manga's current ID, which is retried. A corrected result
    is cached under the ORIGINAL key so callers holding the stale ID keep
    hitting the cache.
 4. Mirror scrape by title. Scrape output is normalized but never cached;
    the mirror's markup is too unstable to memoize for a full TTL.

An exhausted cascade returns an empty list with a nil error. "No chapters"
is data, not a failure.

Parameters:
  - ctx: context.Context
  - mangaID: string (primary provider's manga ID, possibly stale)
  - title: string (human title; enables correction and the mirror step)
  - refresh: bool (skip the cache read, still repopulate)

Returns:
  - []source.ChapterRef: unique chapter numbers, ascending numeric order
  - error: nil unless the resolver itself is misconfigured
*/
func (r *Resolver) Chapters(ctx context.Context, mangaID, title string, refresh bool) ([]source.ChapterRef, error) {
	key := ChapterCacheKey(mangaID, title)

	if !refresh {
		if refs, ok := cache.GetJSON[[]source.ChapterRef](ctx, r.cache, key); ok {
			metrics.RecordCacheEvent("chapters", "hit")
			return refs, nil
		}
		metrics.RecordCacheEvent("chapters", "miss")
	}

	// 1. Primary lookup by the stored ID
	refs := r.primaryChapters(ctx, mangaID)
	if len(refs) > 0 {
		sortChapters(refs)
		cache.SetJSON(ctx, r.cache, key, refs)
		return refs, nil
	}

	// 2. Stale-ID correction through a fresh title search
	if correctedID := r.correctedMangaID(ctx, mangaID, title); correctedID != "" {
		refs = r.primaryChapters(ctx, correctedID)
		if len(refs) > 0 {
			sortChapters(refs)
			cache.SetJSON(ctx, r.cache, key, refs)
			return refs, nil
		}
	}

	// 3. Mirror scrape, uncached
	if r.providers.Mirror != nil {
		scraped, err := r.providers.Mirror.ListChapters(ctx, source.Query{Title: title})
		if err != nil {
			r.degraded(ctx, r.providers.Mirror.Name(), "list_chapters", err)
			scraped = nil
		}

		refs = normalizeScraped(scraped)
		if len(refs) > 0 {
			sortChapters(refs)
			r.logger.InfoContext(ctx, "chapters_resolved_via_mirror",
				slog.String("manga_id", mangaID),
				slog.Int("chapters", len(refs)),
			)
			return refs, nil
		}
	}

	return []source.ChapterRef{}, nil
}

// primaryChapters queries the primary provider, downgrading failures to an
// empty list.
func (r *Resolver) primaryChapters(ctx context.Context, mangaID string) []source.ChapterRef {
	if mangaID == "" {
		return nil
	}

	refs, err := r.providers.Primary.ListChapters(ctx, source.Query{MangaID: mangaID})
	if err != nil {
		r.degraded(ctx, r.providers.Primary.Name(), "list_chapters", err)
		return nil
	}

	return refs
}

// correctedMangaID searches the primary provider by title and returns a
// fresh manga ID differing from the stored one, or "" when correction is
// impossible. A fresh title search always outranks a stale stored ID.
func (r *Resolver) correctedMangaID(ctx context.Context, mangaID, title string) string {
	if title == "" {
		return ""
	}

	correctedID, err := r.providers.Primary.FindMangaID(ctx, title)
	if err != nil {
		r.degraded(ctx, r.providers.Primary.Name(), "find_manga_id", err)
		return ""
	}
	if correctedID == "" || correctedID == mangaID {
		return ""
	}

	r.logger.InfoContext(ctx, "manga_id_corrected",
		slog.String("stored_id", mangaID),
		slog.String("corrected_id", correctedID),
	)

	return correctedID
}
