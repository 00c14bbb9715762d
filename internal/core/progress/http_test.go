// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package progress_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GYCODES/manga-translate/internal/core/progress"
	"github.com/GYCODES/manga-translate/internal/platform/ctxutil"
	"github.com/GYCODES/manga-translate/internal/platform/sec"
)

func newProgressRouter(store progress.ProgressRepository) (chi.Router, *progress.Service) {
	service := newProgressService(store, time.Hour)
	handler := progress.NewHandler(service)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router, service
}

// authenticated builds a request carrying verified claims, as the
// authentication middleware would after accepting a bearer token.
func authenticated(method, path string, body io.Reader) *http.Request {
	request := httptest.NewRequest(method, path, body)
	ctx := ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: testUserID, Username: "reader"})
	return request.WithContext(ctx)
}

/* TestHandler_GetProgress */
func TestHandler_GetProgress(t *testing.T) {
	stored := pageChange("ch-7", "7", 11)
	store := &fakeStore{stored: &stored}
	router, _ := newProgressRouter(store)

	t.Run("stored_position", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authenticated(http.MethodGet, "/progress/"+testMangaID, nil))

		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data progress.Record `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, "ch-7", envelope.Data.ChapterID)
		assert.Equal(t, 11, envelope.Data.PageIndex)
	})

	t.Run("fresh_reader_starts_at_zero", func(t *testing.T) {
		freshManga := "0198c3f2-eeee-7abc-9def-0123456789ab"

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authenticated(http.MethodGet, "/progress/"+freshManga, nil))

		// Absence of history is a zero position, not an error
		require.Equal(t, http.StatusOK, recorder.Code)

		var envelope struct {
			Data progress.Record `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		assert.Equal(t, freshManga, envelope.Data.MangaID)
		assert.Empty(t, envelope.Data.ChapterID)
		assert.Zero(t, envelope.Data.PageIndex)
	})

	t.Run("anonymous_rejected", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/progress/"+testMangaID, nil)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("invalid_manga_id", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authenticated(http.MethodGet, "/progress/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

/* TestHandler_RecordProgress */
func TestHandler_RecordProgress(t *testing.T) {
	t.Run("accepted_and_flushed", func(t *testing.T) {
		store := &fakeStore{}
		router, service := newProgressRouter(store)

		body := strings.NewReader(`{
			"chapter_id": "ch-12",
			"chapter_number": "12",
			"page_index": 4,
			"total_pages": 30
		}`)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authenticated(http.MethodPut, "/progress/"+testMangaID, body))

		// 1. The event is acknowledged before any write happens
		require.Equal(t, http.StatusAccepted, recorder.Code)
		assert.Empty(t, store.writes())

		// 2. The flush carries the claims identity, not a client-sent one
		service.Flush()
		writes := store.writes()
		require.Len(t, writes, 1)
		assert.Equal(t, testUserID, writes[0].UserID)
		assert.Equal(t, testMangaID, writes[0].MangaID)
		assert.Equal(t, 4, writes[0].PageIndex)
	})

	t.Run("missing_chapter_id", func(t *testing.T) {
		router, _ := newProgressRouter(&fakeStore{})

		body := strings.NewReader(`{"page_index": 4}`)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authenticated(http.MethodPut, "/progress/"+testMangaID, body))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("negative_page_index", func(t *testing.T) {
		router, _ := newProgressRouter(&fakeStore{})

		body := strings.NewReader(`{"chapter_id": "ch-1", "page_index": -2}`)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, authenticated(http.MethodPut, "/progress/"+testMangaID, body))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("anonymous_rejected", func(t *testing.T) {
		router, _ := newProgressRouter(&fakeStore{})

		body := strings.NewReader(`{"chapter_id": "ch-1", "page_index": 0}`)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPut, "/progress/"+testMangaID, body))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
