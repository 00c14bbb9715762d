// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package overlay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GYCODES/manga-translate/internal/core/overlay"
)

/* TestLanguageLookups */
func TestLanguageLookups(t *testing.T) {
	tests := []struct {
		name       string
		display    string
		wantTarget string
		wantSource string
		wantModel  string
	}{
		{
			name:       "japanese",
			display:    "Japanese",
			wantTarget: "ja",
			wantSource: "ja",
			wantModel:  "japan",
		},
		{
			name:       "chinese",
			display:    "Chinese",
			wantTarget: "zh-CN",
			wantSource: "zh-CN",
			wantModel:  "ch",
		},
		{
			name:       "korean",
			display:    "Korean",
			wantTarget: "ko",
			wantSource: "ko",
			wantModel:  "korean",
		},
		{
			name:       "english",
			display:    "English",
			wantTarget: "en",
			wantSource: "en",
			wantModel:  "en",
		},
		{
			name:       "vietnamese_has_no_ocr_model",
			display:    "Vietnamese",
			wantTarget: "vi",
			wantSource: "vi",
			wantModel:  "japan",
		},
		{
			name:       "unknown_display_name",
			display:    "Klingon",
			wantTarget: "en",
			wantSource: "auto",
			wantModel:  "japan",
		},
		{
			name:       "empty_display_name",
			display:    "",
			wantTarget: "en",
			wantSource: "auto",
			wantModel:  "japan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTarget, overlay.TranslationTarget(tt.display))
			assert.Equal(t, tt.wantSource, overlay.TranslationSource(tt.display))
			assert.Equal(t, tt.wantModel, overlay.RecognitionModel(tt.display))
		})
	}
}
