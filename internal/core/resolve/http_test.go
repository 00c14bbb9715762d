// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package resolve_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GYCODES/manga-translate/internal/core/resolve"
	"github.com/GYCODES/manga-translate/internal/core/source"
	"github.com/GYCODES/manga-translate/internal/platform/constants"
)

const testMangaID = "0198c3f2-1111-7abc-9def-0123456789ab"

func newRouter(set source.Set) chi.Router {
	resolver, _ := newResolver(set)
	handler := resolve.NewHandler(resolver)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

/*
TestHandler_ListChapters covers the HTTP edge of chapter resolution: the
paginated envelope, the language filter, and the NO_CONTENT_FOUND contract
for an exhausted cascade.
*/
func TestHandler_ListChapters(t *testing.T) {
	primary := &fakeProvider{
		name: constants.SourceMangadex,
		chaptersByID: map[string][]source.ChapterRef{
			testMangaID: {
				{ID: "c1", Number: "1", Language: "en"},
				{ID: "c2", Number: "2", Language: "ja"},
				{ID: "c3", Number: "3", Language: "en"},
			},
		},
	}
	router := newRouter(source.Set{Primary: primary})

	t.Run("paginated_list", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/manga/"+testMangaID+"/chapters?title=Solo+Leveling", nil)
		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data []source.ChapterRef `json:"data"`
			Meta struct {
				Total int `json:"total"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Len(t, envelope.Data, 3)
		assert.Equal(t, 3, envelope.Meta.Total)
	})

	t.Run("language_filter", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/manga/"+testMangaID+"/chapters?langs=ja", nil)
		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data []source.ChapterRef `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		require.Len(t, envelope.Data, 1)
		assert.Equal(t, "2", envelope.Data[0].Number)
	})

	t.Run("invalid_manga_id", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/manga/not-a-uuid/chapters", nil)
		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusBadRequest, recorder.Code)

		var envelope struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "VALIDATION_ERROR", envelope.Code)
	})

	t.Run("exhausted_cascade_is_404", func(t *testing.T) {
		empty := newRouter(source.Set{Primary: &fakeProvider{name: constants.SourceMangadex}})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/manga/"+testMangaID+"/chapters", nil)
		empty.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusNotFound, recorder.Code)

		var envelope struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "NO_CONTENT_FOUND", envelope.Code)
	})
}

/*
TestHandler_ListPages covers the HTTP edge of page resolution, including
source validation against the known provider names.
*/
func TestHandler_ListPages(t *testing.T) {
	primary := &fakeProvider{
		name: constants.SourceMangadex,
		pagesByQuality: map[source.Quality][]string{
			source.QualityFull: {"https://cdn.example/1.png", "https://cdn.example/2.png"},
		},
	}
	router := newRouter(source.Set{Primary: primary})

	t.Run("page_list", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/pages?source=mangadex&chapter=ch-1", nil)
		router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data struct {
				Items []string `json:"items"`
				Total int      `json:"total"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, 2, envelope.Data.Total)
		assert.Equal(t, "https://cdn.example/1.png", envelope.Data.Items[0])
	})

	t.Run("unknown_source_rejected", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/pages?source=piratebay&chapter=ch-1", nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("missing_chapter_rejected", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/pages?source=mangadex", nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("empty_cascade_is_404", func(t *testing.T) {
		empty := newRouter(source.Set{Primary: &fakeProvider{name: constants.SourceMangadex}})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/pages?source=mangadex&chapter=ch-404", nil)
		empty.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
