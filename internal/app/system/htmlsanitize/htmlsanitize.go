// Package htmlsanitize strips markup from user-submitted free text before it
// is validated and stored. Public forms feed straight into the marketing site,
// so stored values are always plain text.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element; script and style contents are dropped.
var strict = bluemonday.StrictPolicy()

// maxPasses bounds the sanitize/unescape loop for nested entity encodings.
const maxPasses = 4

// PlainText returns s with all HTML tags removed. Entities are unescaped so
// ordinary punctuation ("&", "'") survives, and the result is sanitized again
// until it stops changing, so entity-encoded markup cannot come back as tags.
func PlainText(s string) string {
	if s == "" || !strings.ContainsAny(s, "<>&") {
		return s
	}
	out := s
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(strict.Sanitize(out))
		if next == out {
			return out
		}
		out = next
	}
	// Still changing: keep the escaped form.
	return strict.Sanitize(out)
}

// PlainTextPtr applies PlainText to an optional field.
func PlainTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := PlainText(*s)
	return &out
}
