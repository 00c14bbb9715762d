// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

/*
Package source implements the external content providers behind a single
polymorphic interface.

# Providers

  - Mangadex: the authoritative metadata API (primary).
  - Mirror: a scrape-based aggregator site (chapter fallback).
  - Community: a community-upload JSON index (page-level fallback).

Each provider is selected explicitly through the [Set] built at startup; the
resolution layer never branches on provider names. An empty result from any
provider is a normal miss that advances the fallback cascade, never an error.
Only network failures, HTTP error statuses, and malformed payloads are errors,
and the resolution layer downgrades even those to "empty" after logging.
*/
package source

import (
	"context"

	"github.com/GYCODES/manga-translate/internal/platform/constants"
)

// Quality selects the image tier for page resolution.
type Quality string

const (
	// QualityFull requests original-resolution page images.
	QualityFull Quality = "data"

	// QualityDataSaver requests the compressed tier where the provider
	// offers one.
	QualityDataSaver Quality = "data-saver"
)

// ChapterRef is one released chapter as reported by a provider.
//
// ID is opaque and only meaningful together with the provider that produced
// it (a UUID for Mangadex, an absolute URL for the mirror). Within one
// resolved list, Number is the identity: it is a decimal rendered as a string
// ("1", "10.5") so fractional releases survive without float drift.
type ChapterRef struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Title    string `json:"title"`
	Language string `json:"language"`
}

// Query identifies a manga for chapter listing.
type Query struct {
	// MangaID is the provider-native identifier. Providers that only
	// support title search ignore it.
	MangaID string

	// Title is the human-readable title, used by scrape/index providers
	// and for stale-ID correction.
	Title string

	// Languages narrows which translated releases are requested. Empty
	// means the full priority list.
	Languages []string
}

// PageRequest identifies a chapter for page-image listing.
type PageRequest struct {
	// ChapterID is the provider-native chapter identifier.
	ChapterID string

	// Number is the chapter number, used by providers that match chapters
	// positionally instead of by foreign IDs.
	Number string

	// MangaTitle allows index-based providers to locate the series.
	MangaTitle string

	// Quality selects the image tier.
	Quality Quality
}

// Provider is an external source of chapter and page data.
type Provider interface {
	// Name returns the stable source identifier used in cache keys,
	// logs, and the HTTP source parameter.
	Name() string

	// ListChapters returns the chapters a provider knows for the queried
	// manga. An empty slice with a nil error means "nothing released".
	ListChapters(ctx context.Context, q Query) ([]ChapterRef, error)

	// ListPages returns the ordered page image URLs for a chapter.
	// Position 0 is always the first page.
	ListPages(ctx context.Context, req PageRequest) ([]string, error)

	// FindMangaID resolves a title to the provider's native manga ID.
	// An empty string with a nil error means no match.
	FindMangaID(ctx context.Context, title string) (string, error)
}

// Set is the fixed provider topology built once at startup.
//
// Mirror and Community are optional; a nil entry disables the corresponding
// cascade step.
type Set struct {
	Primary   Provider
	Mirror    Provider
	Community Provider
}

// BySource maps an HTTP source parameter to the matching provider.
// Unknown names return nil; the caller decides how to reject them.
func (s Set) BySource(name string) Provider {
	switch name {
	case constants.SourceMangadex:
		return s.Primary
	case constants.SourceMirror:
		return s.Mirror
	case constants.SourceCommunity:
		return s.Community
	default:
		return nil
	}
}
