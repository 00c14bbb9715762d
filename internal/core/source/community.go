// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package source

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/GYCODES/manga-translate/internal/platform/constants"
	"github.com/GYCODES/manga-translate/pkg/pointer"
	"github.com/GYCODES/manga-translate/pkg/slice"
	"github.com/GYCODES/manga-translate/pkg/slug"
)

// Community reads a community-upload index.
//
// The index is keyed by human titles, not provider IDs, so every lookup
// starts from a title search and narrows by normalized-title match. Chapter
// IDs from other providers mean nothing here; page lookups re-derive the
// community chapter from (title, number) instead.
type Community struct {
	client *client
	logger *slog.Logger
}

// NewCommunity creates the community-upload fallback provider.
func NewCommunity(baseURL string, rps float64, logger *slog.Logger) *Community {
	return &Community{
		client: newClient(constants.SourceCommunity, baseURL, rps),
		logger: logger,
	}
}

// Name implements [Provider].
func (p *Community) Name() string { return constants.SourceCommunity }

// # Index Shapes

type communitySeries struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Chapters []communityChapter `json:"chapters"`
}

type communityChapter struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Title  string `json:"title"`
	Pages  *int   `json:"pages,omitempty"`
}

type communityPageList struct {
	Pages []string `json:"pages"`
}

// # Chapter Listing

/*
ListChapters returns the indexed chapters of the series whose normalized
title matches the query. Placeholder numbers are dropped like everywhere
else; a series miss is an empty list, not an error.
*/
func (p *Community) ListChapters(ctx context.Context, q Query) ([]ChapterRef, error) {
	series, err := p.findSeries(ctx, q.Title)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, nil
	}

	refs := slice.Map(series.Chapters, func(chapter communityChapter) ChapterRef {
		return ChapterRef{
			ID:     chapter.ID,
			Number: chapter.Number,
			Title:  chapter.Title,
		}
	})

	return slice.Filter(refs, func(ref ChapterRef) bool {
		return !IsPlaceholderNumber(ref.Number)
	}), nil
}

// FindMangaID implements [Provider]. The returned ID is the community
// index's own series ID.
func (p *Community) FindMangaID(ctx context.Context, title string) (string, error) {
	series, err := p.findSeries(ctx, title)
	if err != nil {
		return "", err
	}
	if series == nil {
		return "", nil
	}
	return series.ID, nil
}

// # Page Listing

/*
ListPages resolves pages through the community index.

The request's ChapterID belongs to whichever provider produced the chapter
list, so it is ignored; the community chapter is re-derived from the manga
title and the chapter number. Both must match, otherwise the result is an
empty list.
*/
func (p *Community) ListPages(ctx context.Context, req PageRequest) ([]string, error) {
	if req.MangaTitle == "" || req.Number == "" {
		return nil, nil
	}

	series, err := p.findSeries(ctx, req.MangaTitle)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, nil
	}

	var match *communityChapter
	for i := range series.Chapters {
		chapter := &series.Chapters[i]
		if sameChapterNumber(chapter.Number, req.Number) {
			match = chapter
			break
		}
	}
	if match == nil {
		return nil, nil
	}
	// The index flags chapters whose uploads were removed with a zero count.
	if match.Pages != nil && *match.Pages == 0 {
		return nil, nil
	}

	var list communityPageList
	rawURL := p.client.endpoint("/api/chapters/"+url.PathEscape(match.ID), nil)
	if err := p.client.getJSON(ctx, "list_pages", rawURL, &list); err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "community_chapter_resolved",
		slog.String("series_id", series.ID),
		slog.String("chapter_id", match.ID),
		slog.Int("declared_pages", pointer.Val(match.Pages)),
		slog.Int("pages", len(list.Pages)),
	)

	return list.Pages, nil
}

// # Series Lookup

// findSeries searches the index and returns the first result whose
// normalized title equals the normalized query title, or nil on a miss.
func (p *Community) findSeries(ctx context.Context, title string) (*communitySeries, error) {
	if title == "" {
		return nil, nil
	}

	values := url.Values{}
	values.Set("title", title)

	var results []communitySeries
	rawURL := p.client.endpoint("/api/series", values)
	if err := p.client.getJSON(ctx, "search", rawURL, &results); err != nil {
		return nil, err
	}

	want := slug.From(title)
	for i := range results {
		if slug.From(results[i].Title) == want {
			return &results[i], nil
		}
	}

	return nil, nil
}

// sameChapterNumber compares chapter numbers numerically when both parse,
// so "3" matches an indexed "3.0". Falls back to raw equality otherwise.
func sameChapterNumber(a, b string) bool {
	if a == b {
		return true
	}
	left, errA := strconv.ParseFloat(a, 64)
	right, errB := strconv.ParseFloat(b, 64)
	return errA == nil && errB == nil && left == right
}
