// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package overlay

import "math"

// ClusterParams tunes the token-merge heuristic. The defaults are tuning
// constants with no ground-truth definition of a "correct" block; deployments
// should validate them against representative OCR output before changing.
type ClusterParams struct {
	// MinConfidence discards tokens the engine was unsure about.
	MinConfidence float64

	// MinBoxSize discards tokens whose box is narrower or shorter than
	// this many pixels. Sub-5px boxes are screentone noise, not text.
	MinBoxSize int

	// VerticalFactor scales the allowed vertical gap by block height.
	VerticalFactor float64

	// HorizontalFactor scales the allowed forward horizontal gap by block
	// height. The backward allowance is fixed at one block height.
	HorizontalFactor float64
}

// DefaultClusterParams returns the production thresholds.
func DefaultClusterParams() ClusterParams {
	return ClusterParams{
		MinConfidence:    0.70,
		MinBoxSize:       5,
		VerticalFactor:   1.5,
		HorizontalFactor: 3.0,
	}
}

// # Clustering

/*
Cluster merges raw OCR tokens into text blocks.

Tokens are filtered (low confidence, sub-minimum boxes) and then folded left
to right in arrival order into a running block. A token joins the current
block when its vertical gap stays under VerticalFactor times the block height
and its horizontal gap falls inside (-blockHeight, HorizontalFactor x
blockHeight); a token failing either test closes the block and starts a new
one. Block text joins member tokens with single spaces; the block box is the
union of member boxes.

The adjacency test approximates "tokens in the same speech bubble" without
layout analysis. Dense panels and rotated text can split or over-merge
blocks; that is a known limitation of the heuristic, not a bug in the fold.
*/
func Cluster(tokens []Token, params ClusterParams) []Block {
	usable := make([]Token, 0, len(tokens))
	for _, token := range tokens {
		if token.Confidence < params.MinConfidence {
			continue
		}
		if token.Box.Width() < params.MinBoxSize || token.Box.Height() < params.MinBoxSize {
			continue
		}
		usable = append(usable, token)
	}

	if len(usable) == 0 {
		return nil
	}

	var blocks []Block
	current := Block{Text: usable[0].Text, Box: usable[0].Box}

	for _, token := range usable[1:] {
		if joinsBlock(token, current.Box, params) {
			current.Text += " " + token.Text
			current.Box = current.Box.Union(token.Box)
			continue
		}

		blocks = append(blocks, current)
		current = Block{Text: token.Text, Box: token.Box}
	}

	return append(blocks, current)
}

// joinsBlock applies the two-condition adjacency test against the current
// block's bounding box.
func joinsBlock(token Token, box Rect, params ClusterParams) bool {
	blockHeight := float64(box.Height())

	verticalGap := math.Abs(float64(token.Box.Y0 - box.Y0))
	horizontalGap := float64(token.Box.X0 - box.X1)

	return verticalGap < params.VerticalFactor*blockHeight &&
		horizontalGap > -blockHeight &&
		horizontalGap < params.HorizontalFactor*blockHeight
}
