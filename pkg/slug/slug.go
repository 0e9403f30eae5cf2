package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Option func(*config)

type config struct {
	separator string
	maxLength int
}

// MaxLength cuts the slug to at most n bytes, at a separator when possible.
func MaxLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLength = n
		}
	}
}

func Separator(s string) Option {
	return func(c *config) {
		if s != "" {
			c.separator = s
		}
	}
}

// Make returns the lowercase ASCII slug of s. It is empty when s has no
// letters or digits.
func Make(s string, opts ...Option) string {
	cfg := config{separator: "-"}
	for _, opt := range opts {
		opt(&cfg)
	}

	folded, _, err := transform.String(fold(), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pending := false
	for _, r := range folded {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	out := b.String()
	if cfg.maxLength > 0 && len(out) > cfg.maxLength {
		out = out[:cfg.maxLength]
		if i := strings.LastIndex(out, cfg.separator); i > 0 {
			out = out[:i]
		}
		out = strings.TrimSuffix(out, cfg.separator)
	}
	return out
}

// fold decomposes s and drops combining marks, so "ā" becomes "a".
// Transformers are stateful, hence one per call.
func fold() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
