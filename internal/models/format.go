package models

import (
	"regexp"
	"strings"
)

// FinishPlaceholder is the value shown wherever no meaningful runner name
// exists: a team past its last leg carries it in the nextRunner field.
const FinishPlaceholder = "----"

// Stored runner names may carry a trailing parenthesized qualifier such as
// a home-region annotation. Both full-width and ASCII parentheses appear in
// the data.
var trailingQualifier = regexp.MustCompile(`\s*[（(][^）)]*[）)]\s*$`)

// The live report's runner field prefixes the name with the leg number.
var leadingLegNumber = regexp.MustCompile(`^\d+`)

// FormatRunnerName strips the trailing parenthesized qualifier from a raw
// runner name for display. The raw name remains the lookup key everywhere.
func FormatRunnerName(name string) string {
	if name == "" {
		return ""
	}
	return trailingQualifier.ReplaceAllString(name, "")
}

// RunnerKey strips the leading leg-number prefix from a live report runner
// field, recovering the key into the individual results document.
func RunnerKey(name string) string {
	return leadingLegNumber.ReplaceAllString(name, "")
}

// IsFinishPlaceholder reports whether a runner-name field holds no real
// runner: empty, or the finish-line sentinel.
func IsFinishPlaceholder(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed == "" || trimmed == FinishPlaceholder
}

// DisplayRunnerName formats a runner-name field for presentation, mapping
// placeholder values to the neutral sentinel.
func DisplayRunnerName(name string) string {
	if IsFinishPlaceholder(name) {
		return FinishPlaceholder
	}
	return FormatRunnerName(name)
}
