package sanitizer

import (
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

func Trim(s string) string {
	return strings.TrimSpace(s)
}

func ToLower(s string) string {
	return strings.ToLower(s)
}

// CollapseSpace trims s and joins its words with single spaces. Newlines
// count as space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SingleLine replaces line breaks and control characters with spaces.
func SingleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// MaxRunes cuts s to at most n runes.
func MaxRunes(n int) func(string) string {
	return func(s string) string {
		if n < 0 {
			return s
		}
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return string(runes[:n])
	}
}

var strictPolicy = sync.OnceValue(bluemonday.StrictPolicy)

// StripHTML removes every tag from s and returns plain text. Entities are
// decoded, so the result must be escaped again before it is rendered.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(strictPolicy().Sanitize(s))
}
