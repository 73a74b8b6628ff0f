package domain

import (
	"strings"
)

// NormalizeAnswer prepares text for answer comparison: it trims leading and
// trailing whitespace and converts to lowercase. Inner whitespace, diacritics,
// hyphens and apostrophes are preserved.
func NormalizeAnswer(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
