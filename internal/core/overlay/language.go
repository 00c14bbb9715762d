// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package overlay

// translationCodes maps reader-facing language display names to the codes
// the translation engine accepts.
var translationCodes = map[string]string{
	"English":             "en",
	"Japanese":            "ja",
	"Korean":              "ko",
	"Chinese":             "zh-CN",
	"Traditional Chinese": "zh-TW",
	"French":              "fr",
	"Spanish":             "es",
	"Portuguese":          "pt",
	"Russian":             "ru",
	"Vietnamese":          "vi",
	"German":              "de",
	"Italian":             "it",
	"Indonesian":          "id",
	"Thai":                "th",
}

// recognitionModels maps display names to the OCR engine's model names.
// The engine bundles CJK scripts into dedicated models; everything latin
// runs through the generic english model.
var recognitionModels = map[string]string{
	"Japanese": "japan",
	"Chinese":  "ch",
	"Korean":   "korean",
	"English":  "en",
}

// # Lookup

// TranslationTarget resolves a display name to a target-language code.
// Unknown names fall back to English so a bad preference still translates.
func TranslationTarget(display string) string {
	if code, ok := translationCodes[display]; ok {
		return code
	}
	return "en"
}

// TranslationSource resolves a display name to a source-language code.
// Unknown or empty names become "auto": the engine detects the script.
func TranslationSource(display string) string {
	if code, ok := translationCodes[display]; ok {
		return code
	}
	return "auto"
}

// RecognitionModel resolves a display name to an OCR model. Manga defaults
// to the japan model.
func RecognitionModel(display string) string {
	if model, ok := recognitionModels[display]; ok {
		return model
	}
	return "japan"
}
