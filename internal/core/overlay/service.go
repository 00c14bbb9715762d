// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package overlay

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/GYCODES/manga-translate/internal/platform/apperr"
	"github.com/GYCODES/manga-translate/internal/platform/bridge"
	"github.com/GYCODES/manga-translate/internal/platform/metrics"
	"github.com/GYCODES/manga-translate/pkg/slice"
	"github.com/GYCODES/manga-translate/pkg/uuid"
)

// # Service Layer

// Service orchestrates OCR, clustering, and translation into page overlays.
type Service struct {
	engine  bridge.Engine
	params  ClusterParams
	workers int
	logger  *slog.Logger
	views   *viewRegistry
}

// NewService constructs the overlay [Service]. The context bounds the view
// registry's cleanup routine; workers bounds batch parallelism.
func NewService(ctx context.Context, engine bridge.Engine, params ClusterParams, workers int, logger *slog.Logger) *Service {
	if workers < 1 {
		workers = 1
	}

	return &Service{
		engine:  engine,
		params:  params,
		workers: workers,
		logger:  logger,
		views:   newViewRegistry(ctx),
	}
}

// ComposeRequest identifies one page image and its language setup.
type ComposeRequest struct {
	ImageURL       string
	OCRLanguage    string
	SourceLanguage string
	TargetLanguage string
}

// BatchRequest covers a run of pages composed under one view generation.
type BatchRequest struct {
	ViewID         string
	Generation     uint64
	Pages          []string
	OCRLanguage    string
	SourceLanguage string
	TargetLanguage string
}

// # View Generations

// RegisterView returns the current generation of a reader view, creating
// the view on first sight.
func (service *Service) RegisterView(viewID string) uint64 {
	return service.views.Current(viewID)
}

// BumpView advances a view's generation, making every in-flight batch for
// the older generations stale.
func (service *Service) BumpView(viewID string) uint64 {
	return service.views.Bump(viewID)
}

// # Translation Orchestration

/*
Translate sends block texts through the bridge and re-anchors the results.

The output carries exactly one entry per input block, in input order. When
the engine returns a short, empty, or failed batch, the affected slots keep
the original text unmodified: translation failures degrade content, they
never block page display.

Parameters:
  - ctx: context.Context
  - blocks: []Block (clustered page text)
  - targetDisplay: string (display name, unknown falls back to English)
  - sourceDisplay: string (display name, unknown falls back to auto-detect)

Returns:
  - []TranslatedBlock: one per input block, each with a fresh SequenceID
*/
func (service *Service) Translate(ctx context.Context, blocks []Block, targetDisplay, sourceDisplay string) []TranslatedBlock {
	if len(blocks) == 0 {
		return nil
	}

	texts := slice.Map(blocks, func(block Block) string { return block.Text })

	translated, err := service.engine.Translate(ctx, texts, TranslationTarget(targetDisplay), TranslationSource(sourceDisplay))
	if err != nil {
		service.logger.WarnContext(ctx, "translation_degraded",
			slog.Int("blocks", len(blocks)),
			slog.String("error", err.Error()),
		)
		translated = nil
	}

	anchored := make([]TranslatedBlock, len(blocks))
	for i, block := range blocks {
		text := block.Text
		if i < len(translated) && translated[i] != "" {
			text = translated[i]
		}

		anchored[i] = TranslatedBlock{
			SequenceID: uuid.New(),
			Text:       block.Text,
			Translated: text,
			Box:        block.Box,
		}
	}

	return anchored
}

// # Page Composition

/*
ComposePage runs the full pipeline for one page image: recognize tokens,
cluster them into blocks, translate the blocks.

An OCR-side bridge failure produces an empty overlay rather than an error;
the page renders untranslated.
*/
func (service *Service) ComposePage(ctx context.Context, req ComposeRequest) PageOverlay {
	result := PageOverlay{ImageURL: req.ImageURL}

	recognized, err := service.engine.Recognize(ctx, req.ImageURL, RecognitionModel(req.OCRLanguage))
	if err != nil {
		service.logger.WarnContext(ctx, "ocr_degraded",
			slog.String("image_url", req.ImageURL),
			slog.String("error", err.Error()),
		)
		return result
	}

	tokens := slice.Map(recognized, func(raw bridge.Block) Token {
		return Token{
			Text:       raw.Text,
			Confidence: raw.Confidence,
			Box: Rect{
				X0: raw.X,
				Y0: raw.Y,
				X1: raw.X + raw.Width,
				Y1: raw.Y + raw.Height,
			},
		}
	})

	blocks := Cluster(tokens, service.params)
	metrics.ObserveBlocks(len(blocks))
	if len(blocks) == 0 {
		return result
	}

	result.Blocks = service.Translate(ctx, blocks, req.TargetLanguage, req.SourceLanguage)
	return result
}

/*
ComposePages composes overlays for a run of pages, bounded by the worker
limit.

Generation contract: a zero req.Generation starts a fresh generation for the
view, which instantly stales any older in-flight batch. A non-zero
req.Generation must equal the view's current generation both before the work
starts and after it finishes; otherwise the composed results are discarded
and the batch reports itself superseded. Discarding after the work is the
point: the reader navigated away mid-composition, and applying the stale
result would overwrite the view they are now looking at.

Returns:
  - []PageOverlay: one per requested page, in request order
  - uint64: the generation this batch ran under
  - error: apperr.Superseded when a newer generation owns the view
*/
func (service *Service) ComposePages(ctx context.Context, req BatchRequest) ([]PageOverlay, uint64, error) {
	generation := req.Generation
	if generation == 0 {
		generation = service.views.Bump(req.ViewID)
	} else if service.views.Current(req.ViewID) != generation {
		return nil, generation, apperr.Superseded()
	}

	overlays := make([]PageOverlay, len(req.Pages))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(service.workers)

	for i, pageURL := range req.Pages {
		i, pageURL := i, pageURL
		group.Go(func() error {
			overlays[i] = service.ComposePage(groupCtx, ComposeRequest{
				ImageURL:       pageURL,
				OCRLanguage:    req.OCRLanguage,
				SourceLanguage: req.SourceLanguage,
				TargetLanguage: req.TargetLanguage,
			})
			return nil
		})
	}

	// Workers only degrade, they never error.
	_ = group.Wait()

	if service.views.Current(req.ViewID) != generation {
		service.logger.InfoContext(ctx, "batch_overlay_superseded",
			slog.String("view", req.ViewID),
			slog.Uint64("generation", generation),
			slog.Int("pages", len(req.Pages)),
		)
		return nil, generation, apperr.Superseded()
	}

	return overlays, generation, nil
}
