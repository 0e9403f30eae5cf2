// Package i18n translates message keys using YAML locale files.
//
// Locale documents are keyed by language at the top level; nested keys are
// flattened with dots. FSAdapter reads them from any fs.FS, typically an
// embed.FS shipped with the binary:
//
//	//go:embed locales/*.yaml
//	var locales embed.FS
//
//	tr, err := i18n.NewTranslator(ctx, i18n.FSAdapter{FS: locales, Dir: "locales"})
//	msg := tr.T("en", "booking.errors.email_invalid")
//
// Middleware negotiates the request language with golang.org/x/text/language
// and stores it in the request context, where Tc and Nc pick it up.
package i18n
