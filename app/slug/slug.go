// Package slug maps post titles and slugs to URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
)

var (
	disallowed     = regexp.MustCompile(`[^a-z0-9\- ]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Normalize lower-cases s, trims it, strips everything outside [a-z0-9- ]
// and collapses each whitespace run into a single hyphen.
//
// Links and lookups must both go through Normalize or generated links stop
// resolving. The result never contains whitespace, so Normalize is idempotent.
func Normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = disallowed.ReplaceAllString(s, "")
	return whitespaceRuns.ReplaceAllString(s, "-")
}
