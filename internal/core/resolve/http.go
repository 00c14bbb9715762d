// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package resolve

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GYCODES/manga-translate/internal/core/source"
	"github.com/GYCODES/manga-translate/internal/platform/apperr"
	"github.com/GYCODES/manga-translate/internal/platform/constants"
	requestutil "github.com/GYCODES/manga-translate/internal/platform/request"
	"github.com/GYCODES/manga-translate/internal/platform/respond"
	"github.com/GYCODES/manga-translate/internal/platform/validate"
	"github.com/GYCODES/manga-translate/pkg/convert"
	"github.com/GYCODES/manga-translate/pkg/pagination"
	"github.com/GYCODES/manga-translate/pkg/query"
	"github.com/GYCODES/manga-translate/pkg/slice"
)

const (
	FieldItems = "items"
	FieldTotal = "total"
)

// # Handler Implementation

// Handler implements the HTTP layer for content resolution.
type Handler struct {
	resolver *Resolver
}

// NewHandler constructs a new resolution [Handler].
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// RegisterRoutes attaches the resolution endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/manga/{mangaID}/chapters", handler.ListChapters)
	api.Get("/pages", handler.ListPages)
}

// # Chapter Resolution

/*
GET /api/v1/manga/{mangaID}/chapters.

Description: Resolves the canonical chapter list for a manga, paginated.

Request:
  - mangaID: string (UUID, primary provider's manga ID)
  - title: string (human title; enables stale-ID correction and mirror fallback)
  - langs: string (comma-separated language filter, e.g. "en,ja")
  - refresh: bool (bypass the resolution cache)
  - limit: int
  - page: int

Response:
  - 200: []ChapterRef: Paginated canonical list
  - 404: NO_CONTENT_FOUND: Every cascade step came up empty
*/
func (handler *Handler) ListChapters(writer http.ResponseWriter, request *http.Request) {
	mangaID := requestutil.ID(request, "mangaID")
	title := requestutil.Query(request, "title")
	refresh := convert.ToBool(requestutil.Query(request, "refresh"))

	v := &validate.Validator{}
	v.Required(FieldMangaID, mangaID)
	v.UUID(FieldMangaID, mangaID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.resolver.Chapters(request.Context(), mangaID, title, refresh)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Optional language narrowing. Chapters whose language is unknown (the
	// mirror does not report one) always pass the filter.
	if languages := query.StringSlice(requestutil.Query(request, "langs")); len(languages) > 0 {
		allowed := make(map[string]struct{}, len(languages))
		for _, language := range languages {
			allowed[language] = struct{}{}
		}

		chapters = slice.Filter(chapters, func(ref source.ChapterRef) bool {
			if ref.Language == "" {
				return true
			}
			_, ok := allowed[ref.Language]
			return ok
		})
	}

	if len(chapters) == 0 {
		respond.Error(writer, request, apperr.NoContent("chapters"))
		return
	}

	params := pagination.FromRequest(request)
	window := pagination.Slice(chapters, params)

	respond.Paginated(writer, window, pagination.NewMeta(params.Page, params.Limit, len(chapters)))
}

// # Page Resolution

/*
GET /api/v1/pages.

Description: Resolves the ordered page image URLs for one chapter. Query
parameters instead of a path ID because mirror chapter IDs are full URLs.

Request:
  - source: string (mangadex, mirror, community)
  - chapter: string (chapter ID native to the source)
  - number: string (chapter number, for the community fallback)
  - title: string (manga title, for the community fallback)
  - refresh: bool (bypass the resolution cache)

Response:
  - 200: {items, total}: Page URLs in reading order
  - 404: NO_CONTENT_FOUND: Every cascade step came up empty
  - 503: The named source is known but not configured
*/
func (handler *Handler) ListPages(writer http.ResponseWriter, request *http.Request) {
	sourceName := requestutil.Query(request, "source")
	chapterID := requestutil.Query(request, "chapter")
	refresh := convert.ToBool(requestutil.Query(request, "refresh"))

	v := &validate.Validator{}
	v.Required(FieldSource, sourceName)
	v.OneOf(FieldSource, sourceName, constants.SourceMangadex, constants.SourceMirror, constants.SourceCommunity)
	v.Required(FieldChapter, chapterID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pages, err := handler.resolver.Pages(request.Context(), sourceName, source.PageRequest{
		ChapterID:  chapterID,
		Number:     requestutil.Query(request, "number"),
		MangaTitle: requestutil.Query(request, "title"),
	}, refresh)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if len(pages) == 0 {
		respond.Error(writer, request, apperr.NoContent("pages"))
		return
	}

	respond.OK(writer, map[string]any{
		FieldItems: pages,
		FieldTotal: len(pages),
	})
}
