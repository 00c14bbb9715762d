// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package progress

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GYCODES/manga-translate/internal/platform/dberr"
	"github.com/GYCODES/manga-translate/internal/platform/middleware"
	requestutil "github.com/GYCODES/manga-translate/internal/platform/request"
	"github.com/GYCODES/manga-translate/internal/platform/respond"
	"github.com/GYCODES/manga-translate/internal/platform/validate"
)

const (
	FieldMangaID   = "manga_id"
	FieldChapterID = "chapter_id"
	FieldPageIndex = "page_index"
)

// # Handler Implementation

// Handler implements the HTTP layer for reading progress.
type Handler struct {
	service *Service
}

// NewHandler constructs a new progress [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the progress endpoints to the root API router.
// Both endpoints require an authenticated session.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Route("/progress", func(router chi.Router) {
		router.Use(middleware.RequireAuth)
		router.Get("/{mangaID}", handler.GetProgress)
		router.Put("/{mangaID}", handler.RecordProgress)
	})
}

/*
GetProgress returns the caller's reading position in one manga.

GET /api/v1/progress/{mangaID}

Description: A reader without stored history receives a zero position
(first chapter, first page) rather than an error; absence of progress is a
normal state for every manga the user has not opened yet.

Response:
  - 200: Record. Zero-valued chapter and page fields mean "start from the
    beginning".
*/
func (handler *Handler) GetProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mangaID := requestutil.ID(request, "mangaID")

	v := &validate.Validator{}
	v.Required(FieldMangaID, mangaID)
	v.UUID(FieldMangaID, mangaID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.GetProgress(request.Context(), userID, mangaID)
	if errors.Is(err, dberr.ErrNotFound) {
		record = &Record{UserID: userID, MangaID: mangaID}
		err = nil
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

// recordProgressRequest defines the inbound JSON schema for a page change.
type recordProgressRequest struct {
	ChapterID     string `json:"chapter_id"`
	ChapterNumber string `json:"chapter_number"`
	PageIndex     int    `json:"page_index"`
	TotalPages    int    `json:"total_pages"`
}

/*
RecordProgress accepts a page-change event for the caller.

PUT /api/v1/progress/{mangaID}

Description: The event is debounced server-side, so a fast page flipper
produces one store write per pause instead of one per page. The response
acknowledges acceptance, not persistence.

Request:
  - chapter_id: string (resolved chapter identifier)
  - chapter_number: string (display number, may be empty for specials)
  - page_index: int (zero-based position within the chapter)
  - total_pages: int

Response:
  - 202: The event was accepted for the next debounced write.
*/
func (handler *Handler) RecordProgress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mangaID := requestutil.ID(request, "mangaID")

	var payload recordProgressRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldMangaID, mangaID)
	v.UUID(FieldMangaID, mangaID)
	v.Required(FieldChapterID, payload.ChapterID)
	v.Custom(FieldPageIndex, payload.PageIndex < 0, "Page index cannot be negative")
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record := Record{
		UserID:        userID,
		MangaID:       mangaID,
		ChapterID:     payload.ChapterID,
		ChapterNumber: payload.ChapterNumber,
		PageIndex:     payload.PageIndex,
		TotalPages:    payload.TotalPages,
	}

	if err := handler.service.RecordPageChange(request.Context(), record); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusAccepted, respond.SuccessEnvelope{Data: map[string]any{
		"status": "accepted",
	}})
}
