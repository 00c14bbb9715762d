// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package overlay

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GYCODES/manga-translate/internal/platform/constants"
	requestutil "github.com/GYCODES/manga-translate/internal/platform/request"
	"github.com/GYCODES/manga-translate/internal/platform/respond"
	"github.com/GYCODES/manga-translate/internal/platform/validate"
)

const (
	FieldImageURL   = "image_url"
	FieldView       = "view"
	FieldPages      = "pages"
	FieldGeneration = "generation"
	FieldItems      = "items"
)

// # Handler Implementation

// Handler implements the HTTP layer for overlay composition.
type Handler struct {
	service *Service
}

// NewHandler constructs a new overlay [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the overlay endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Post("/overlay", handler.ComposeOverlay)
	api.Post("/overlay/batch", handler.ComposeBatch)
}

// # Single Page

// composeOverlayRequest defines the inbound JSON schema for one page.
type composeOverlayRequest struct {
	ImageURL       string `json:"image_url"`
	OCRLanguage    string `json:"ocr_language"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

/*
POST /api/v1/overlay.

Description: Recognizes and translates the text on one page image.

Request:
  - image_url: string (absolute page image URL)
  - ocr_language: string (display name; defaults to the Japanese model)
  - source_language: string (display name; defaults to auto-detect)
  - target_language: string (display name; defaults to English)

Response:
  - 200: PageOverlay. Blocks is empty when the page has no readable text or
    the recognition engine was unavailable.
*/
func (handler *Handler) ComposeOverlay(writer http.ResponseWriter, request *http.Request) {
	var payload composeOverlayRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldImageURL, payload.ImageURL)
	v.Custom(FieldImageURL,
		payload.ImageURL != "" && !strings.HasPrefix(payload.ImageURL, "http"),
		"Image URL must be absolute")
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result := handler.service.ComposePage(request.Context(), ComposeRequest{
		ImageURL:       payload.ImageURL,
		OCRLanguage:    payload.OCRLanguage,
		SourceLanguage: payload.SourceLanguage,
		TargetLanguage: payload.TargetLanguage,
	})

	respond.OK(writer, result)
}

// # Batch

// composeBatchRequest defines the inbound JSON schema for a page run.
type composeBatchRequest struct {
	View           string   `json:"view"`
	Generation     uint64   `json:"generation"`
	Pages          []string `json:"pages"`
	OCRLanguage    string   `json:"ocr_language"`
	SourceLanguage string   `json:"source_language"`
	TargetLanguage string   `json:"target_language"`
}

/*
POST /api/v1/overlay/batch.

Description: Composes overlays for a run of pages under one reader view.
Passing generation 0 starts a new generation for the view and invalidates
any batch still running for it; passing a previously issued generation
retries that batch if it is still current.

Request:
  - view: string (opaque reader view identifier)
  - generation: uint64 (0 for a fresh view generation)
  - pages: []string (absolute page image URLs, at most 40)
  - ocr_language, source_language, target_language: display names

Response:
  - 200: {view, generation, items: []PageOverlay}
  - 409: SUPERSEDED: a newer generation owns this view
*/
func (handler *Handler) ComposeBatch(writer http.ResponseWriter, request *http.Request) {
	var payload composeBatchRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required(FieldView, payload.View)
	v.Custom(FieldPages, len(payload.Pages) == 0, "At least one page is required")
	v.Custom(FieldPages, len(payload.Pages) > constants.MaxBatchPages,
		fmt.Sprintf("A batch is limited to %d pages", constants.MaxBatchPages))
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	overlays, generation, err := handler.service.ComposePages(request.Context(), BatchRequest{
		ViewID:         payload.View,
		Generation:     payload.Generation,
		Pages:          payload.Pages,
		OCRLanguage:    payload.OCRLanguage,
		SourceLanguage: payload.SourceLanguage,
		TargetLanguage: payload.TargetLanguage,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldView:       payload.View,
		FieldGeneration: generation,
		FieldItems:      overlays,
	})
}
