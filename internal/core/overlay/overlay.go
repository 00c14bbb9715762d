// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

/*
Package overlay builds per-page translation overlays.

A page image goes through three stages: the external bridge recognizes raw
text tokens, the clusterer merges tokens into speech-bubble blocks, and the
translation orchestrator replaces block texts while keeping each block
anchored to its source-image coordinates. The caller positions the rendered
overlay proportionally against the displayed image size.

Every stage degrades instead of failing: a dead bridge yields an empty
overlay, a malformed translation yields the original text. A page without an
overlay is still a readable page.
*/
package overlay

// # Geometry

// Rect is an axis-aligned bounding box in source-image pixel coordinates.
type Rect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Width returns the horizontal extent of the box.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns the vertical extent of the box.
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Union returns the smallest box containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: min(r.X0, other.X0),
		Y0: min(r.Y0, other.Y0),
		X1: max(r.X1, other.X1),
		Y1: max(r.Y1, other.Y1),
	}
}

// # Text Model

// Token is one raw OCR token as recognized on the page.
type Token struct {
	Text       string
	Confidence float64
	Box        Rect
}

// Block is a clustered run of tokens forming one semantic text line.
type Block struct {
	Text string `json:"text"`
	Box  Rect   `json:"box"`
}

// TranslatedBlock is a translated text anchored to its source box.
//
// SequenceID is unique per composition so reader clients can key overlay
// anchors stably across re-renders.
type TranslatedBlock struct {
	SequenceID string `json:"sequence_id"`
	Text       string `json:"text"`
	Translated string `json:"translated"`
	Box        Rect   `json:"box"`
}

// PageOverlay is the full overlay for one page image.
type PageOverlay struct {
	ImageURL string            `json:"image_url"`
	Blocks   []TranslatedBlock `json:"blocks"`
}
