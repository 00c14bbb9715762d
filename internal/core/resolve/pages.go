// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package resolve

import (
	"context"

	"github.com/GYCODES/manga-translate/internal/core/source"
	"github.com/GYCODES/manga-translate/internal/platform/apperr"
	"github.com/GYCODES/manga-translate/internal/platform/cache"
	"github.com/GYCODES/manga-translate/internal/platform/constants"
	"github.com/GYCODES/manga-translate/internal/platform/metrics"
)

// PageCacheKey builds the cache key for one page resolution.
func PageCacheKey(sourceName, chapterID string) string {
	return constants.CachePrefixPages + sourceName + ":" + chapterID
}

// # Page Resolution

/*
Pages resolves a chapter into its ordered page image URLs.

Cascade, each step only when the previous returned zero pages:
 1. Full quality from the provider the chapter list came from.
 2. The compressed tier from the same provider.
 3. The community upload index, matched by manga title and chapter number
    because community IDs share nothing with other providers'.

Page order is positional and authoritative: index 0 is the first page no
matter which step supplied the list. Only non-empty results are cached; an
empty cascade must stay retryable before the TTL runs out.

Parameters:
  - ctx: context.Context
  - sourceName: string (which provider produced req.ChapterID)
  - req: source.PageRequest (chapter ID, number, manga title; Quality is
    owned by the cascade and overwritten)
  - refresh: bool (skip the cache read, still repopulate)

Returns:
  - []string: page image URLs, possibly empty
  - error: unknown or unconfigured source only
*/
func (r *Resolver) Pages(ctx context.Context, sourceName string, req source.PageRequest, refresh bool) ([]string, error) {
	provider := r.providers.BySource(sourceName)
	if provider == nil {
		return nil, apperr.ServiceUnavailable("The requested content source is not configured")
	}

	key := PageCacheKey(sourceName, req.ChapterID)

	if !refresh {
		if pages, ok := cache.GetJSON[[]string](ctx, r.cache, key); ok {
			metrics.RecordCacheEvent("pages", "hit")
			return pages, nil
		}
		metrics.RecordCacheEvent("pages", "miss")
	}

	// 1. Full quality from the requested source
	req.Quality = source.QualityFull
	pages := r.providerPages(ctx, provider, req)

	// 2. Compressed tier from the same source
	if len(pages) == 0 {
		req.Quality = source.QualityDataSaver
		pages = r.providerPages(ctx, provider, req)
	}

	// 3. Community uploads, unless that is where we already looked
	if len(pages) == 0 && r.providers.Community != nil && provider.Name() != constants.SourceCommunity {
		req.Quality = source.QualityFull
		pages = r.providerPages(ctx, r.providers.Community, req)
	}

	if len(pages) == 0 {
		return []string{}, nil
	}

	cache.SetJSON(ctx, r.cache, key, pages)
	return pages, nil
}

// providerPages lists pages from one provider, downgrading failures to an
// empty list.
func (r *Resolver) providerPages(ctx context.Context, provider source.Provider, req source.PageRequest) []string {
	pages, err := provider.ListPages(ctx, req)
	if err != nil {
		r.degraded(ctx, provider.Name(), "list_pages", err)
		return nil
	}

	return pages
}
