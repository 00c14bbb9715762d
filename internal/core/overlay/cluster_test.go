// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package overlay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GYCODES/manga-translate/internal/core/overlay"
)

func token(text string, confidence float64, x0, y0, x1, y1 int) overlay.Token {
	return overlay.Token{
		Text:       text,
		Confidence: confidence,
		Box:        overlay.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1},
	}
}

/*
TestCluster_MergesSameLine verifies that two tokens with overlapping y-ranges
and adjacent x-ranges land in one block with a union box and space-joined
text.
*/
func TestCluster_MergesSameLine(t *testing.T) {
	tokens := []overlay.Token{
		token("こんにちは", 0.95, 100, 100, 140, 120),
		token("世界", 0.90, 150, 102, 190, 122),
	}

	blocks := overlay.Cluster(tokens, overlay.DefaultClusterParams())

	require.Len(t, blocks, 1)
	assert.Equal(t, "こんにちは 世界", blocks[0].Text)
	assert.Equal(t, overlay.Rect{X0: 100, Y0: 100, X1: 190, Y1: 122}, blocks[0].Box)
}

/*
TestCluster_SplitsOnWideHorizontalGap verifies that a forward gap beyond
HorizontalFactor block heights closes the running block.
*/
func TestCluster_SplitsOnWideHorizontalGap(t *testing.T) {
	// Block height 20; the second token starts 61px past the block edge,
	// just over the 3x limit of 60.
	tokens := []overlay.Token{
		token("left", 0.95, 100, 100, 140, 120),
		token("right", 0.95, 201, 100, 240, 120),
	}

	blocks := overlay.Cluster(tokens, overlay.DefaultClusterParams())

	require.Len(t, blocks, 2)
	assert.Equal(t, "left", blocks[0].Text)
	assert.Equal(t, "right", blocks[1].Text)
}

/*
TestCluster_SplitsOnVerticalGap verifies the vertical adjacency bound of
VerticalFactor block heights.
*/
func TestCluster_SplitsOnVerticalGap(t *testing.T) {
	// Both cases keep the horizontal gap at -15, safely inside its window,
	// so only the vertical bound decides.
	t.Run("within_bound_merges", func(t *testing.T) {
		// Gap 29 < 1.5 x 20
		tokens := []overlay.Token{
			token("line one", 0.95, 100, 100, 200, 120),
			token("line two", 0.95, 185, 129, 285, 149),
		}

		blocks := overlay.Cluster(tokens, overlay.DefaultClusterParams())
		require.Len(t, blocks, 1)
		assert.Equal(t, "line one line two", blocks[0].Text)
	})

	t.Run("at_bound_splits", func(t *testing.T) {
		// Gap 30 is not strictly under 1.5 x 20
		tokens := []overlay.Token{
			token("line one", 0.95, 100, 100, 200, 120),
			token("far away", 0.95, 185, 130, 285, 150),
		}

		blocks := overlay.Cluster(tokens, overlay.DefaultClusterParams())
		require.Len(t, blocks, 2)
	})
}

/*
TestCluster_BackwardGapBound verifies the open lower bound of the horizontal
window: a token may start up to one block height behind the block edge.
*/
func TestCluster_BackwardGapBound(t *testing.T) {
	t.Run("overlap_within_height_merges", func(t *testing.T) {
		// Gap -19 > -20
		tokens := []overlay.Token{
			token("first", 0.95, 100, 100, 140, 120),
			token("second", 0.95, 121, 100, 165, 120),
		}

		blocks := overlay.Cluster(tokens, overlay.DefaultClusterParams())
		require.Len(t, blocks, 1)
	})

	t.Run("overlap_at_height_splits", func(t *testing.T) {
		// Gap -20 is not inside the open interval
		tokens := []overlay.Token{
			token("first", 0.95, 100, 100, 140, 120),
			token("second", 0.95, 120, 100, 165, 120),
		}

		blocks := overlay.Cluster(tokens, overlay.DefaultClusterParams())
		require.Len(t, blocks, 2)
	})
}

/*
TestCluster_FiltersNoise verifies the confidence and box-size gates run
before any merging.
*/
func TestCluster_FiltersNoise(t *testing.T) {
	tests := []struct {
		name   string
		tokens []overlay.Token
		want   []string
	}{
		{
			name: "low_confidence_dropped",
			tokens: []overlay.Token{
				token("noise", 0.69, 100, 100, 140, 120),
				token("keep", 0.70, 100, 100, 140, 120),
			},
			want: []string{"keep"},
		},
		{
			name: "tiny_box_dropped",
			tokens: []overlay.Token{
				token("dust", 0.99, 100, 100, 103, 120),
				token("speck", 0.99, 100, 100, 140, 104),
				token("keep", 0.95, 100, 100, 140, 120),
			},
			want: []string{"keep"},
		},
		{
			name: "all_noise_yields_nothing",
			tokens: []overlay.Token{
				token("noise", 0.10, 100, 100, 140, 120),
			},
			want: nil,
		},
		{
			name:   "no_tokens",
			tokens: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := overlay.Cluster(tt.tokens, overlay.DefaultClusterParams())

			var texts []string
			for _, block := range blocks {
				texts = append(texts, block.Text)
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

/*
TestCluster_RunningBlockSequence verifies the fold over a realistic token
stream: a two-line bubble yields one block per line (the heuristic works at
line granularity), then a separate bubble across the panel.
*/
func TestCluster_RunningBlockSequence(t *testing.T) {
	tokens := []overlay.Token{
		token("おれは", 0.92, 100, 100, 160, 124),
		token("海賊王に", 0.95, 166, 102, 250, 126),
		token("なる！", 0.97, 100, 132, 160, 156),
		token("ドン！！", 0.88, 600, 400, 700, 440),
	}

	blocks := overlay.Cluster(tokens, overlay.DefaultClusterParams())

	require.Len(t, blocks, 3)

	// 1. Adjacent tokens on the first line merge with a union box
	assert.Equal(t, "おれは 海賊王に", blocks[0].Text)
	assert.Equal(t, overlay.Rect{X0: 100, Y0: 100, X1: 250, Y1: 126}, blocks[0].Box)

	// 2. The carriage return to the line below closes the running block
	assert.Equal(t, "なる！", blocks[1].Text)

	// 3. The sound effect across the panel stands alone
	assert.Equal(t, "ドン！！", blocks[2].Text)
}

/*
TestCluster_CustomParams verifies that the thresholds are honored when a
deployment overrides the defaults.
*/
func TestCluster_CustomParams(t *testing.T) {
	params := overlay.ClusterParams{
		MinConfidence:    0.50,
		MinBoxSize:       2,
		VerticalFactor:   0.5,
		HorizontalFactor: 1.0,
	}

	tokens := []overlay.Token{
		token("low", 0.55, 100, 100, 140, 120),
		// Gap 25 exceeds 1.0 x 20 under the tightened factor
		token("far", 0.55, 165, 100, 200, 120),
	}

	blocks := overlay.Cluster(tokens, params)
	require.Len(t, blocks, 2)

	// The default confidence gate would have dropped this stream entirely
	blocks = overlay.Cluster(tokens, overlay.DefaultClusterParams())
	assert.Empty(t, blocks)
}
