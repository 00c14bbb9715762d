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
)

const (
	// feedPageSize is the Mangadex maximum per feed request.
	feedPageSize = 500

	// maxFeedPages caps the pagination loop. 20 pages x 500 chapters is far
	// beyond any real series; the cap only guards against a lying `total`.
	maxFeedPages = 20
)

// Mangadex is the authoritative metadata provider (primary source).
type Mangadex struct {
	client *client
	logger *slog.Logger
}

// NewMangadex creates the primary provider against the given API base URL.
func NewMangadex(baseURL string, rps float64, logger *slog.Logger) *Mangadex {
	return &Mangadex{
		client: newClient(constants.SourceMangadex, baseURL, rps),
		logger: logger,
	}
}

// Name implements [Provider].
func (p *Mangadex) Name() string { return constants.SourceMangadex }

// # Wire Shapes

type mdFeedResponse struct {
	Data   []mdChapter `json:"data"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
	Total  int         `json:"total"`
}

type mdChapter struct {
	ID         string         `json:"id"`
	Attributes mdChapterAttrs `json:"attributes"`
}

type mdChapterAttrs struct {
	// Chapter and Title are nullable upstream (oneshots carry no number).
	Chapter            *string `json:"chapter"`
	Title              *string `json:"title"`
	TranslatedLanguage string  `json:"translatedLanguage"`
}

type mdSearchResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type mdAtHomeResponse struct {
	BaseURL string `json:"baseUrl"`
	Chapter struct {
		Hash      string   `json:"hash"`
		Data      []string `json:"data"`
		DataSaver []string `json:"dataSaver"`
	} `json:"chapter"`
}

// # Chapter Listing

/*
ListChapters pulls the full chapter feed for a manga ID.

The feed is requested in the configured languages and paginated at the
Mangadex maximum of 500 entries per call. Releases of the same chapter number
in several languages are collapsed to one entry by the language priority
order; placeholder numbers ("", "0", "0.0") are dropped entirely.

A manga that is licensed/blocked in this region simply yields an empty feed,
which is a normal miss, not an error.
*/
func (p *Mangadex) ListChapters(ctx context.Context, q Query) ([]ChapterRef, error) {
	languages := q.Languages
	if len(languages) == 0 {
		languages = constants.LanguagePriority
	}

	var raw []ChapterRef

	offset := 0
	for page := 0; page < maxFeedPages; page++ {
		values := url.Values{}
		values.Set("limit", strconv.Itoa(feedPageSize))
		values.Set("offset", strconv.Itoa(offset))
		values.Set("order[chapter]", "asc")
		for _, language := range languages {
			values.Add("translatedLanguage[]", language)
		}

		var response mdFeedResponse
		endpoint := p.client.endpoint("/manga/"+url.PathEscape(q.MangaID)+"/feed", values)
		if err := p.client.getJSON(ctx, "list_chapters", endpoint, &response); err != nil {
			return nil, err
		}

		raw = append(raw, slice.Map(response.Data, func(item mdChapter) ChapterRef {
			return ChapterRef{
				ID:       item.ID,
				Number:   pointer.Val(item.Attributes.Chapter),
				Title:    pointer.Val(item.Attributes.Title),
				Language: item.Attributes.TranslatedLanguage,
			}
		})...)

		offset += feedPageSize
		if offset >= response.Total || len(response.Data) == 0 {
			break
		}
	}

	usable := slice.Filter(raw, func(ref ChapterRef) bool {
		return !IsPlaceholderNumber(ref.Number)
	})

	deduped := dedupeByLanguage(usable, languages)

	p.logger.DebugContext(ctx, "mangadex_feed_resolved",
		slog.String("manga_id", q.MangaID),
		slog.Int("raw", len(raw)),
		slog.Int("deduped", len(deduped)),
	)

	return deduped, nil
}

// FindMangaID implements [Provider] via the title search endpoint.
// It returns the top match only; ambiguity is accepted as-is because the
// caller uses this to correct stale IDs, not to disambiguate titles.
func (p *Mangadex) FindMangaID(ctx context.Context, title string) (string, error) {
	values := url.Values{}
	values.Set("title", title)
	values.Set("limit", "1")

	var response mdSearchResponse
	if err := p.client.getJSON(ctx, "search_manga", p.client.endpoint("/manga", values), &response); err != nil {
		return "", err
	}

	if len(response.Data) == 0 {
		return "", nil
	}
	return response.Data[0].ID, nil
}

// # Page Listing

/*
ListPages resolves a chapter to its ordered page image URLs through the
at-home server handshake.

Quality selects between the original tier (data) and the compressed tier
(dataSaver); the URL path segment matches the tier name.
*/
func (p *Mangadex) ListPages(ctx context.Context, req PageRequest) ([]string, error) {
	var response mdAtHomeResponse
	endpoint := p.client.endpoint("/at-home/server/"+url.PathEscape(req.ChapterID), nil)
	if err := p.client.getJSON(ctx, "list_pages", endpoint, &response); err != nil {
		return nil, err
	}

	files := response.Chapter.Data
	segment := "data"
	if req.Quality == QualityDataSaver {
		files = response.Chapter.DataSaver
		segment = "data-saver"
	}

	if response.BaseURL == "" || response.Chapter.Hash == "" {
		return nil, nil
	}

	return slice.Map(files, func(file string) string {
		return response.BaseURL + "/" + segment + "/" + response.Chapter.Hash + "/" + file
	}), nil
}

// # Shared Helpers

// IsPlaceholderNumber reports whether a chapter number marks an unnumbered
// entry (oneshots, covers) that must never appear in a resolved list.
func IsPlaceholderNumber(number string) bool {
	return number == "" || number == "0" || number == "0.0"
}

// dedupeByLanguage collapses releases sharing a chapter number down to the
// highest-priority language. Order of first appearance is preserved and
// breaks ties between equal-priority releases.
func dedupeByLanguage(refs []ChapterRef, languages []string) []ChapterRef {
	rank := make(map[string]int, len(languages))
	for i, language := range languages {
		rank[language] = i
	}
	// Languages outside the priority list sort after every listed one.
	unknownRank := len(languages)

	rankOf := func(language string) int {
		if r, ok := rank[language]; ok {
			return r
		}
		return unknownRank
	}

	keptIndex := make(map[string]int, len(refs))
	var kept []ChapterRef

	for _, ref := range refs {
		existing, seen := keptIndex[ref.Number]
		if !seen {
			keptIndex[ref.Number] = len(kept)
			kept = append(kept, ref)
			continue
		}

		if rankOf(ref.Language) < rankOf(kept[existing].Language) {
			kept[existing] = ref
		}
	}

	return kept
}
