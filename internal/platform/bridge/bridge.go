// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

/*
Package bridge isolates the external OCR/translation process behind a typed
request/response contract.

The overlay service only sees the [Engine] interface, so the transport (pipe,
socket, in-process stub) can be swapped without touching resolution logic. The
production implementation, [PipeEngine], spawns the configured interpreter per
request and exchanges exactly one JSON line over stdin/stdout.
*/
package bridge

import (
	"context"
	"errors"
)

// Request modes understood by the bridge process.
const (
	ModeOCR       = "ocr"
	ModeTranslate = "translate"
)

var (
	// ErrMalformedOutput reports that the bridge produced output that could
	// not be decoded into the expected shape.
	ErrMalformedOutput = errors.New("bridge: malformed output")

	// ErrTimeout reports that the bridge failed to terminate within the
	// configured deadline.
	ErrTimeout = errors.New("bridge: timed out")
)

// Block is one recognized text unit as reported by the OCR side of the bridge.
// Coordinates are pixels in the source image, origin top-left.
type Block struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
}

// Engine is the OCR/translation boundary used by the overlay service.
//
// Implementations must treat every call as independent; no session state is
// carried between invocations.
type Engine interface {
	// Translate sends texts through the bridge and returns the translated
	// strings. The returned slice is whatever the bridge produced; callers
	// enforce their own length/order guarantees.
	Translate(ctx context.Context, texts []string, targetLang, sourceLang string) ([]string, error)

	// Recognize runs OCR over the image at imageURL using the given bridge
	// language code and returns the raw recognized blocks.
	Recognize(ctx context.Context, imageURL, lang string) ([]Block, error)
}

// request is the single JSON line written to the bridge's stdin.
type request struct {
	Mode       string   `json:"mode"`
	Texts      []string `json:"texts,omitempty"`
	URL        string   `json:"url,omitempty"`
	TargetLang string   `json:"target_lang,omitempty"`
	Source     string   `json:"source,omitempty"`
	Lang       string   `json:"lang,omitempty"`
}

// ocrResponse is the JSON object the bridge prints in OCR mode.
type ocrResponse struct {
	Blocks []Block `json:"blocks"`
	Error  string  `json:"error"`
}

// errResponse is the error envelope the bridge prints when a request fails
// before mode dispatch (e.g. invalid JSON input).
type errResponse struct {
	Error string `json:"error"`
}
