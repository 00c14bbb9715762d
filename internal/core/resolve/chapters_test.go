// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package resolve_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GYCODES/manga-translate/internal/core/source"
	"github.com/GYCODES/manga-translate/internal/platform/constants"
)

/*
TestResolver_Chapters_PrimaryCanonical verifies that a primary hit is sorted
numerically, returned as canonical, and cached for the next call.
*/
func TestResolver_Chapters_PrimaryCanonical(t *testing.T) {
	primary := &fakeProvider{
		name: constants.SourceMangadex,
		chaptersByID: map[string][]source.ChapterRef{
			"manga-1": {
				{ID: "c2", Number: "2", Language: "en"},
				{ID: "c10", Number: "10", Language: "en"},
				{ID: "c15", Number: "1.5", Language: "en"},
			},
		},
	}
	mirror := &fakeProvider{name: constants.SourceMirror}
	resolver, _ := newResolver(source.Set{Primary: primary, Mirror: mirror})

	refs, err := resolver.Chapters(context.Background(), "manga-1", "Solo Leveling", false)
	require.NoError(t, err)

	// 1. Numeric ascending order, not lexical
	assert.Equal(t, []string{"1.5", "2", "10"}, chapterNumbers(refs))
	assert.Equal(t, 1, primary.listCalls)
	assert.Zero(t, mirror.listCalls)

	// 2. Second resolution is served from the cache
	refs, err = resolver.Chapters(context.Background(), "manga-1", "Solo Leveling", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.5", "2", "10"}, chapterNumbers(refs))
	assert.Equal(t, 1, primary.listCalls)

	// 3. refresh bypasses the cache read and hits the provider again
	_, err = resolver.Chapters(context.Background(), "manga-1", "Solo Leveling", true)
	require.NoError(t, err)
	assert.Equal(t, 2, primary.listCalls)
}

/*
TestResolver_Chapters_StaleIDCorrection verifies that an empty stored-ID
lookup triggers a title search, the corrected ID is retried, and the result
lands in the cache under the original key.
*/
func TestResolver_Chapters_StaleIDCorrection(t *testing.T) {
	primary := &fakeProvider{
		name: constants.SourceMangadex,
		chaptersByID: map[string][]source.ChapterRef{
			"fresh-id": {{ID: "c1", Number: "1", Language: "en"}},
		},
		searchID: "fresh-id",
	}
	resolver, _ := newResolver(source.Set{Primary: primary})

	refs, err := resolver.Chapters(context.Background(), "stale-id", "Solo Leveling", false)
	require.NoError(t, err)

	// 1. The corrected ID's chapters come back, not an empty list
	require.Len(t, refs, 1)
	assert.Equal(t, "1", refs[0].Number)
	assert.Equal(t, 1, primary.searchCalls)
	assert.Equal(t, 2, primary.listCalls)

	// 2. Cached under the ORIGINAL key: the same stale ID now hits the cache
	refs, err = resolver.Chapters(context.Background(), "stale-id", "Solo Leveling", false)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, 1, primary.searchCalls)
	assert.Equal(t, 2, primary.listCalls)
}

/*
TestResolver_Chapters_NoCorrectionWithoutTitle verifies that a blank title
cannot trigger the search step.
*/
func TestResolver_Chapters_NoCorrectionWithoutTitle(t *testing.T) {
	primary := &fakeProvider{name: constants.SourceMangadex, searchID: "fresh-id"}
	resolver, _ := newResolver(source.Set{Primary: primary})

	refs, err := resolver.Chapters(context.Background(), "stale-id", "", false)
	require.NoError(t, err)

	assert.Empty(t, refs)
	assert.Zero(t, primary.searchCalls)
}

/*
TestResolver_Chapters_MirrorFallback verifies the scrape fallback: missing
numbers are assigned from position, placeholders dropped, and the result is
never cached.
*/
func TestResolver_Chapters_MirrorFallback(t *testing.T) {
	primary := &fakeProvider{
		name:        constants.SourceMangadex,
		chaptersErr: errors.New("upstream down"),
	}
	mirror := &fakeProvider{
		name: constants.SourceMirror,
		chapters: []source.ChapterRef{
			{ID: "https://mirror.example/c/3", Number: "3"},
			{ID: "https://mirror.example/c/sp", Number: ""},
			{ID: "https://mirror.example/c/0", Number: "0"},
		},
	}
	resolver, _ := newResolver(source.Set{Primary: primary, Mirror: mirror})

	refs, err := resolver.Chapters(context.Background(), "manga-1", "Solo Leveling", false)
	require.NoError(t, err)

	// 1. Entry at position 1 got number "2"; the "0" placeholder is gone
	assert.Equal(t, []string{"2", "3"}, chapterNumbers(refs))
	assert.Equal(t, 1, mirror.listCalls)

	// 2. Scrape results are not cached; the next call scrapes again
	_, err = resolver.Chapters(context.Background(), "manga-1", "Solo Leveling", false)
	require.NoError(t, err)
	assert.Equal(t, 2, mirror.listCalls)
}

/*
TestResolver_Chapters_Exhausted verifies that a fully empty cascade is data,
not an error.
*/
func TestResolver_Chapters_Exhausted(t *testing.T) {
	t.Run("with_mirror", func(t *testing.T) {
		primary := &fakeProvider{name: constants.SourceMangadex}
		mirror := &fakeProvider{name: constants.SourceMirror}
		resolver, _ := newResolver(source.Set{Primary: primary, Mirror: mirror})

		refs, err := resolver.Chapters(context.Background(), "manga-1", "Ghost Title", false)

		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("mirror_disabled", func(t *testing.T) {
		primary := &fakeProvider{name: constants.SourceMangadex}
		resolver, _ := newResolver(source.Set{Primary: primary})

		refs, err := resolver.Chapters(context.Background(), "manga-1", "Ghost Title", false)

		require.NoError(t, err)
		assert.Empty(t, refs)
	})
}
