// Package slug generates URL-safe identifiers from free-text names.
package slug

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Make lowercases the input, drops everything outside [a-z0-9 -], converts
// whitespace runs to single dashes and collapses dash runs. Idempotent:
// Make(Make(x)) == Make(x).
func Make(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
