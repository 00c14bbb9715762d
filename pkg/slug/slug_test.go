// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GYCODES/manga-translate/pkg/slug"
)

/*
TestFrom covers the normalization pipeline against provider-style titles.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple_title", "Solo Leveling", "solo-leveling"},
		{"accented_title", "Héros Légendaire", "heros-legendaire"},
		{"punctuation_soup", "One-Punch Man!!: Remake", "one-punch-man-remake"},
		{"numeric_title", "86 Eighty Six", "86-eighty-six"},
		{"leading_trailing_junk", "  --Berserk-- ", "berserk"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}

/*
TestFrom_Stability ensures equivalent spellings collapse to the same slug,
which title matching between providers depends on.
*/
func TestFrom_Stability(t *testing.T) {
	assert.Equal(t, slug.From("Tower of God"), slug.From("tower OF god"))
	assert.Equal(t, slug.From("Re:Zero"), slug.From("re zero"))
}
