package booking

import (
	"context"
	"embed"
	"sync"

	"github.com/himtrails/tourbook/pkg/i18n"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Locales is the i18n adapter for the embedded translations.
func Locales() i18n.Adapter {
	return i18n.FSAdapter{FS: localeFS, Dir: "locales"}
}

var defaultTranslator = sync.OnceValues(func() (*i18n.Translator, error) {
	return i18n.NewTranslator(context.Background(), Locales())
})

// DefaultTranslator returns a translator over the embedded locales.
func DefaultTranslator() *i18n.Translator {
	tr, err := defaultTranslator()
	if err != nil {
		panic(err)
	}
	return tr
}
