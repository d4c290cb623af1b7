// Package markup escapes untrusted text and converts post bodies to trusted HTML.
package markup

import "strings"

// The ampersand goes first so entities added by later pairs are not escaped twice.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape replaces the five markup-significant characters with character
// references. Everything else is returned unchanged.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return escaper.Replace(s)
}
