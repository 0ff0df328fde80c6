package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// GenerateSlug turns a display name into a URL-safe identifier.
// "Jane Doe" -> "jane-doe"
func GenerateSlug(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))

	// Whitespace runs become single hyphens
	hyphenated := whitespaceRuns.ReplaceAllString(lower, "-")

	// Keep only a-z, 0-9 and hyphens
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "")

	// Collapse hyphen runs and trim the edges
	normalized := slugHyphenRuns.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}
