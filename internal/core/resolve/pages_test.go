// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package resolve_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GYCODES/manga-translate/internal/core/source"
	"github.com/GYCODES/manga-translate/internal/platform/apperr"
	"github.com/GYCODES/manga-translate/internal/platform/constants"
)

/*
TestResolver_Pages_FullQuality verifies that a full-quality hit stops the
cascade cold: no compressed tier, no community lookup, and the second call
is served from the cache.
*/
func TestResolver_Pages_FullQuality(t *testing.T) {
	primary := &fakeProvider{
		name: constants.SourceMangadex,
		pagesByQuality: map[source.Quality][]string{
			source.QualityFull: {"https://cdn.example/1.png", "https://cdn.example/2.png"},
		},
	}
	community := &fakeProvider{name: constants.SourceCommunity}
	resolver, _ := newResolver(source.Set{Primary: primary, Community: community})

	request := source.PageRequest{ChapterID: "ch-1", Number: "3", MangaTitle: "Solo Leveling"}

	pages, err := resolver.Pages(context.Background(), constants.SourceMangadex, request, false)
	require.NoError(t, err)

	// 1. One provider call, at full quality
	assert.Equal(t, []string{"https://cdn.example/1.png", "https://cdn.example/2.png"}, pages)
	require.Equal(t, 1, primary.pageCalls)
	assert.Equal(t, source.QualityFull, primary.pageRequests[0].Quality)
	assert.Zero(t, community.pageCalls)

	// 2. Cache serves the repeat
	_, err = resolver.Pages(context.Background(), constants.SourceMangadex, request, false)
	require.NoError(t, err)
	assert.Equal(t, 1, primary.pageCalls)
}

/*
TestResolver_Pages_DataSaverFallback verifies the compressed tier runs only
after the full tier came up empty, still on the same provider.
*/
func TestResolver_Pages_DataSaverFallback(t *testing.T) {
	primary := &fakeProvider{
		name: constants.SourceMangadex,
		pagesByQuality: map[source.Quality][]string{
			source.QualityDataSaver: {"https://cdn.example/1.jpg"},
		},
	}
	community := &fakeProvider{name: constants.SourceCommunity}
	resolver, _ := newResolver(source.Set{Primary: primary, Community: community})

	pages, err := resolver.Pages(context.Background(), constants.SourceMangadex, source.PageRequest{ChapterID: "ch-1"}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://cdn.example/1.jpg"}, pages)
	require.Equal(t, 2, primary.pageCalls)
	assert.Equal(t, source.QualityFull, primary.pageRequests[0].Quality)
	assert.Equal(t, source.QualityDataSaver, primary.pageRequests[1].Quality)
	assert.Zero(t, community.pageCalls)
}

/*
TestResolver_Pages_CommunityFallback verifies the last cascade step reaches
the upload index with the title and number it needs for its own matching.
*/
func TestResolver_Pages_CommunityFallback(t *testing.T) {
	primary := &fakeProvider{name: constants.SourceMangadex}
	community := &fakeProvider{
		name: constants.SourceCommunity,
		pagesByQuality: map[source.Quality][]string{
			source.QualityFull: {"https://uploads.example/1.png"},
		},
	}
	resolver, _ := newResolver(source.Set{Primary: primary, Community: community})

	pages, err := resolver.Pages(context.Background(), constants.SourceMangadex, source.PageRequest{
		ChapterID:  "ch-1",
		Number:     "3",
		MangaTitle: "Solo Leveling",
	}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://uploads.example/1.png"}, pages)
	assert.Equal(t, 2, primary.pageCalls)
	require.Equal(t, 1, community.pageCalls)

	// The community step keys on title + number, not the foreign chapter ID
	communityRequest := community.pageRequests[0]
	assert.Equal(t, "Solo Leveling", communityRequest.MangaTitle)
	assert.Equal(t, "3", communityRequest.Number)
	assert.Equal(t, source.QualityFull, communityRequest.Quality)
}

/*
TestResolver_Pages_Exhausted verifies that an empty cascade returns empty
data uncached, and that a community-sourced request never falls back onto
the community index a second time.
*/
func TestResolver_Pages_Exhausted(t *testing.T) {
	t.Run("empty_not_cached", func(t *testing.T) {
		primary := &fakeProvider{name: constants.SourceMangadex}
		resolver, _ := newResolver(source.Set{Primary: primary})

		pages, err := resolver.Pages(context.Background(), constants.SourceMangadex, source.PageRequest{ChapterID: "ch-1"}, false)
		require.NoError(t, err)
		assert.Empty(t, pages)
		assert.Equal(t, 2, primary.pageCalls)

		// Empty results must stay retryable, so no cache entry exists
		_, err = resolver.Pages(context.Background(), constants.SourceMangadex, source.PageRequest{ChapterID: "ch-1"}, false)
		require.NoError(t, err)
		assert.Equal(t, 4, primary.pageCalls)
	})

	t.Run("community_source_no_self_fallback", func(t *testing.T) {
		community := &fakeProvider{name: constants.SourceCommunity}
		resolver, _ := newResolver(source.Set{
			Primary:   &fakeProvider{name: constants.SourceMangadex},
			Community: community,
		})

		pages, err := resolver.Pages(context.Background(), constants.SourceCommunity, source.PageRequest{
			ChapterID:  "cc-3",
			Number:     "3",
			MangaTitle: "Solo Leveling",
		}, false)
		require.NoError(t, err)

		assert.Empty(t, pages)
		// Both quality tiers, but no third step back into the same index
		assert.Equal(t, 2, community.pageCalls)
	})
}

/*
TestResolver_Pages_UnconfiguredSource verifies that naming a known but
disabled source is surfaced as a 503, not treated as empty content.
*/
func TestResolver_Pages_UnconfiguredSource(t *testing.T) {
	resolver, _ := newResolver(source.Set{Primary: &fakeProvider{name: constants.SourceMangadex}})

	_, err := resolver.Pages(context.Background(), constants.SourceMirror, source.PageRequest{ChapterID: "x"}, false)

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "SERVICE_UNAVAILABLE", appError.Code)
}
