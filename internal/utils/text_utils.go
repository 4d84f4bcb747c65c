package utils

import (
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const (
	// TruncationMarker is appended to text cut short by TruncateText
	TruncationMarker = "..."
	// StoredTextLimit is the number of characters an analysis result keeps
	StoredTextLimit = 500
	// PreviewLimit is the number of characters shown in report previews
	PreviewLimit = 200
)

// TextProcessor provides utilities for processing text
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText keeps the first maxChars characters of text and appends
// TruncationMarker when anything was cut. Counting is by rune, so the
// result is always valid UTF-8 when the input is.
func (tp *TextProcessor) TruncateText(text string, maxChars int) string {
	truncated, cut := truncateRunes(text, maxChars)
	if !cut {
		return text
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_chars", maxChars))

	return truncated + TruncationMarker
}

// Preview shortens already stored text for report listings
func Preview(text string) string {
	truncated, cut := truncateRunes(text, PreviewLimit)
	if !cut {
		return text
	}
	return truncated + TruncationMarker
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	// Drop invalid bytes, keep everything else
	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// ProcessText sanitizes text and folds it to NFC so composed and
// decomposed forms of the same word match the same patterns
func (tp *TextProcessor) ProcessText(text string) string {
	return norm.NFC.String(tp.SanitizeUTF8(text))
}

// truncateRunes returns the first maxChars runes of text and whether
// anything was dropped. A non-positive limit disables truncation.
func truncateRunes(text string, maxChars int) (string, bool) {
	if maxChars <= 0 || len(text) <= maxChars {
		return text, false
	}
	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i], true
		}
		count++
	}
	return text, false
}
