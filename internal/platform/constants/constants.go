// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Resolution: Language priority and cache key taxonomy for content resolution.
  - Bridge: Modes understood by the external OCR/translation engine.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "manga-translate-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Overlay composition waits on the OCR bridge, so writes get generous headroom.
	DefaultWriteTimeout = 120 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	// It must exceed the bridge timeout or overlay requests die at the router.
	GlobalRequestTimeout = 90 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim expected in access tokens.
	AuthIssuer = "manga-translate"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Outbound HTTP

const (
	// OutboundUserAgent identifies this service to upstream content providers.
	OutboundUserAgent = AppName + "/" + AppVersion
)

// # Content Sources

const (
	// SourceMangadex is the authoritative metadata provider.
	SourceMangadex = "mangadex"

	// SourceMirror is the scrape-based fallback provider.
	SourceMirror = "mirror"

	// SourceCommunity is the community-upload index used for page-level fallback.
	SourceCommunity = "community"
)

// LanguagePriority orders translated releases of the same chapter number.
// When duplicates exist, the release whose language appears earliest wins.
var LanguagePriority = []string{"en", "ja", "ko", "zh", "zh-hk", "zh-ro", "fr", "es", "pt-br", "ru"}

// # Cache Key Taxonomy

const (
	// CachePrefixChapters namespaces chapter list resolutions: chapters:{id}:{title}.
	CachePrefixChapters = "chapters:"

	// CachePrefixPages namespaces page list resolutions: pages:{source}:{chapterID}.
	CachePrefixPages = "pages:"
)

// # Bridge Modes

const (
	// BridgeModeOCR asks the engine to recognize text blocks in an image.
	BridgeModeOCR = "ocr"

	// BridgeModeTranslate asks the engine to translate a batch of texts.
	BridgeModeTranslate = "translate"
)

// # Overlay Views

const (
	// MaxBatchPages caps how many pages one batch overlay request may carry.
	MaxBatchPages = 40

	// OverlayViewTTL is how long an idle reader view keeps its generation
	// counter before the registry drops it.
	OverlayViewTTL = 15 * time.Minute

	// OverlayViewCleanupInterval is how often expired views are removed.
	OverlayViewCleanupInterval = 5 * time.Minute
)

// # Database Schemas

const (
	SchemaLibrary = "library"
)
