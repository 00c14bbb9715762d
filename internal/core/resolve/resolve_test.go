// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package resolve_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/GYCODES/manga-translate/internal/core/resolve"
	"github.com/GYCODES/manga-translate/internal/core/source"
	"github.com/GYCODES/manga-translate/internal/platform/cache"
)

// fakeProvider is a scriptable [source.Provider] that counts calls so tests
// can assert exactly which cascade steps ran.
type fakeProvider struct {
	name string

	chaptersByID map[string][]source.ChapterRef
	chapters     []source.ChapterRef
	chaptersErr  error

	searchID  string
	searchErr error

	pagesByQuality map[source.Quality][]string
	pagesErr       error

	listCalls    int
	searchCalls  int
	pageCalls    int
	pageRequests []source.PageRequest
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) ListChapters(_ context.Context, q source.Query) ([]source.ChapterRef, error) {
	f.listCalls++
	if f.chaptersErr != nil {
		return nil, f.chaptersErr
	}
	if f.chaptersByID != nil {
		return f.chaptersByID[q.MangaID], nil
	}
	return f.chapters, nil
}

func (f *fakeProvider) ListPages(_ context.Context, req source.PageRequest) ([]string, error) {
	f.pageCalls++
	f.pageRequests = append(f.pageRequests, req)
	if f.pagesErr != nil {
		return nil, f.pagesErr
	}
	return f.pagesByQuality[req.Quality], nil
}

func (f *fakeProvider) FindMangaID(_ context.Context, _ string) (string, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return "", f.searchErr
	}
	return f.searchID, nil
}

// newResolver wires fakes and a fresh in-memory cache into a Resolver.
func newResolver(set source.Set) (*resolve.Resolver, cache.Cache) {
	store := cache.NewMemory(time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return resolve.NewResolver(set, store, logger), store
}

func chapterNumbers(refs []source.ChapterRef) []string {
	numbers := make([]string, len(refs))
	for i, ref := range refs {
		numbers[i] = ref.Number
	}
	return numbers
}
