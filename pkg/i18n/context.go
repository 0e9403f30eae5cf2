package i18n

import "context"

type localeContextKey struct{}

// SetLocale stores the request language in ctx.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the stored language, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if ctx == nil {
		return DefaultLanguage
	}
	if locale, _ := ctx.Value(localeContextKey{}).(string); locale != "" {
		return locale
	}
	return DefaultLanguage
}

// LookupLocale is GetLocale without the default.
func LookupLocale(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	locale, _ := ctx.Value(localeContextKey{}).(string)
	return locale, locale != ""
}
