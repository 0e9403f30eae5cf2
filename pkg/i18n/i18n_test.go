package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himtrails/tourbook/pkg/i18n"
)

const enYAML = `
en:
  greeting: "Hello, %{name}!"
  booking:
    people:
      one: "%{count} person"
      other: "%{count} people"
    errors:
      email_invalid: "Please enter a valid email address"
`

const hiYAML = `
hi:
  greeting: "नमस्ते, %{name}!"
`

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	fsys := fstest.MapFS{
		"locales/en.yaml":   {Data: []byte(enYAML)},
		"locales/hi.yml":    {Data: []byte(hiYAML)},
		"locales/README.md": {Data: []byte("ignored")},
	}
	tr, err := i18n.NewTranslator(context.Background(), i18n.FSAdapter{FS: fsys, Dir: "locales"}, opts...)
	require.NoError(t, err)
	return tr
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	msgs, err := i18n.ParseYAML(context.Background(), []byte(enYAML))
	require.NoError(t, err)
	assert.Equal(t, "Please enter a valid email address", msgs["en"]["booking.errors.email_invalid"])
	assert.Equal(t, "%{count} person", msgs["en"]["booking.people.one"])

	_, err = i18n.ParseYAML(context.Background(), []byte("en: just a string"))
	require.ErrorIs(t, err, i18n.ErrInvalidStructure)

	_, err = i18n.ParseYAML(context.Background(), []byte("en: [unclosed"))
	require.ErrorIs(t, err, i18n.ErrFailedToParseYAML)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = i18n.ParseYAML(ctx, []byte(enYAML))
	require.ErrorIs(t, err, i18n.ErrLoadingCancelled)
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	_, err := i18n.NewTranslator(context.Background(), nil)
	require.ErrorIs(t, err, i18n.ErrNilAdapter)

	_, err = i18n.NewTranslator(context.Background(), i18n.MapAdapter{})
	require.ErrorIs(t, err, i18n.ErrNoTranslations)

	_, err = i18n.NewTranslator(context.Background(), i18n.FSAdapter{FS: fstest.MapFS{}, Dir: "missing"})
	require.ErrorIs(t, err, i18n.ErrFailedToReadFile)

	tr := newTranslator(t)
	assert.Equal(t, []string{"en", "hi"}, tr.SupportedLanguages())
}

func TestTranslate(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	assert.Equal(t, "Hello, Jane!", tr.T("en", "greeting", "name", "Jane"))
	assert.Equal(t, "नमस्ते, Jane!", tr.T("hi", "greeting", "name", "Jane"))
	assert.Equal(t, "Please enter a valid email address", tr.T("hi", "booking.errors.email_invalid"), "falls back to default language")
	assert.Equal(t, "missing.key", tr.T("en", "missing.key"))
	assert.Equal(t, "fallback Jane", tr.Td("en", "missing.key", "fallback %{name}", "name", "Jane"))
	assert.Equal(t, "Hello, %{name}!", tr.T("en", "greeting"), "unfilled placeholder stays")
	assert.True(t, tr.Has("en", "greeting"))
	assert.False(t, tr.Has("hi", "booking.errors.email_invalid"))

	strict := newTranslator(t, i18n.WithFallbackToKey(false))
	assert.Equal(t, "", strict.T("en", "missing.key"))
}

func TestPlural(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	assert.Equal(t, "1 person", tr.N("en", "booking.people", 1))
	assert.Equal(t, "2 people", tr.N("en", "booking.people", 2))
	assert.Equal(t, "0 people", tr.N("en", "booking.people", 0))

	ctx := i18n.SetLocale(context.Background(), "en")
	assert.Equal(t, "5 people", tr.Nc(ctx, "booking.people", 5))
	assert.Equal(t, "Hello, Ann!", tr.Tc(ctx, "greeting", "name", "Ann"))
}

func TestMatch(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"empty", nil, "en"},
		{"exact", []string{"hi"}, "hi"},
		{"regional", []string{"hi-IN"}, "hi"},
		{"header with weights", []string{"fr;q=0.9, hi;q=0.8"}, "hi"},
		{"unsupported", []string{"fr"}, "en"},
		{"first preference wins", []string{"en", "hi"}, "en"},
		{"garbage", []string{";;;"}, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.prefs...))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	tr := newTranslator(t)

	var got string
	h := i18n.Middleware(tr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.GetLocale(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/booking", nil)
	req.Header.Set("Accept-Language", "hi-IN,hi;q=0.9,en;q=0.8")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "hi", got)
	assert.Equal(t, "hi", rec.Header().Get("Content-Language"))

	req = httptest.NewRequest(http.MethodGet, "/booking?lang=en", nil)
	req.Header.Set("Accept-Language", "hi")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "en", got)

	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(context.Background()))
}

func TestStringify(t *testing.T) {
	t.Parallel()
	assert.Nil(t, i18n.Stringify(nil))
	assert.Equal(t, []string{"max", "10", "min", "2"}, i18n.Stringify(map[string]any{"min": 2, "max": 10}))
}
