package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/text/language"

	"github.com/himtrails/tourbook/pkg/logger"
)

// DefaultLanguage is used when nothing better can be negotiated.
const DefaultLanguage = "en"

// Translator resolves message keys to localized strings. Placeholders take
// the form %{name} and are filled from key/value argument pairs.
type Translator struct {
	mu            sync.RWMutex
	messages      map[string]Messages
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger

	tags    []language.Tag
	langs   []string
	matcher language.Matcher
}

// Option configures a Translator.
type Option func(*Translator)

func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls what T returns for unknown keys: the key itself
// (the default) or "".
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) { t.fallbackToKey = fallback }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every key lookup that
// falls back.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) { t.logMissing = enabled }
}

// NewTranslator loads translations from adapter.
func NewTranslator(ctx context.Context, adapter Adapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	msgs, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, ErrNoTranslations
	}
	t.messages = msgs
	t.buildMatcher()

	t.logger.InfoContext(ctx, "translations loaded", logger.Component("i18n"), slog.Any("languages", t.langs))
	return t, nil
}

// buildMatcher orders the default language first so it wins ties.
func (t *Translator) buildMatcher() {
	langs := make([]string, 0, len(t.messages))
	for lang := range t.messages {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	if i := slices.Index(langs, t.defaultLang); i > 0 {
		langs = append([]string{t.defaultLang}, slices.Delete(langs, i, i+1)...)
	}

	tags := make([]language.Tag, 0, len(langs))
	kept := make([]string, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			t.logger.Warn("skipping unparseable language", logger.Component("i18n"), slog.String("lang", l))
			continue
		}
		tags = append(tags, tag)
		kept = append(kept, l)
	}
	t.tags = tags
	t.langs = kept
	t.matcher = language.NewMatcher(tags)
}

// SupportedLanguages returns loaded language codes, default first.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.langs)
}

func (t *Translator) DefaultLanguage() string { return t.defaultLang }

// Match picks the best supported language for the given preferences, each
// being either a language tag or a full Accept-Language header value.
func (t *Translator) Match(prefs ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var want []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		want = append(want, tags...)
	}
	if len(want) == 0 || len(t.tags) == 0 {
		return t.defaultLang
	}

	_, idx, conf := t.matcher.Match(want...)
	if conf == language.No {
		return t.defaultLang
	}
	return t.langs[idx]
}

// Has reports whether lang has a message for key.
func (t *Translator) Has(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.messages[lang][key]
	return ok
}

// T translates key into lang. Languages without the key fall back to the
// default language, then to the key itself.
//
//	tr.T("en", "booking.notice.destination", "title", "Harshil Valley", "price", "₹12,999")
func (t *Translator) T(lang, key string, args ...string) string {
	if tmpl, ok := t.lookup(lang, key); ok {
		return format(tmpl, args)
	}
	if t.fallbackToKey {
		return format(key, args)
	}
	return ""
}

// Td is T with an explicit default used instead of the key.
func (t *Translator) Td(lang, key, def string, args ...string) string {
	if tmpl, ok := t.lookup(lang, key); ok {
		return format(tmpl, args)
	}
	return format(def, args)
}

// N translates a plural key. It tries key.zero (n == 0), key.one (n == 1)
// and key.other, then key itself. The count is available as %{count}.
func (t *Translator) N(lang, key string, n int, args ...string) string {
	args = append(slices.Clone(args), "count", strconv.Itoa(n))

	var forms []string
	switch n {
	case 0:
		forms = []string{key + ".zero", key + ".other"}
	case 1:
		forms = []string{key + ".one"}
	default:
		forms = []string{key + ".other"}
	}
	forms = append(forms, key)

	for _, k := range forms {
		if tmpl, ok := t.lookup(lang, k); ok {
			return format(tmpl, args)
		}
	}
	if t.fallbackToKey {
		return format(key, args)
	}
	return ""
}

// Tc translates using the language stored in ctx by Middleware.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Nc is N using the language stored in ctx.
func (t *Translator) Nc(ctx context.Context, key string, n int, args ...string) string {
	return t.N(GetLocale(ctx), key, n, args...)
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if tmpl, ok := t.messages[lang][key]; ok {
		return tmpl, true
	}
	if lang != t.defaultLang {
		if tmpl, ok := t.messages[t.defaultLang][key]; ok {
			return tmpl, true
		}
	}
	if t.logMissing {
		t.logger.Warn("translation not found", logger.Component("i18n"), slog.String("lang", lang), slog.String("key", key))
	}
	return "", false
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// format substitutes %{name} placeholders. Unknown placeholders are left as
// is; a trailing unpaired argument is ignored.
func format(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Stringify turns a TranslationValues map into key/value argument pairs.
func Stringify(values map[string]any) []string {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]string, 0, len(values)*2)
	for _, k := range keys {
		out = append(out, k, fmt.Sprint(values[k]))
	}
	return out
}
