package i18n

import "net/http"

const (
	// QueryParam overrides the negotiated language, e.g. ?lang=hi.
	QueryParam = "lang"
	// CookieName persists an explicit language choice.
	CookieName = "lang"
)

// Middleware negotiates the request language against the translator's
// supported languages and stores it with SetLocale. Preference order: the
// lang query parameter, the lang cookie, then Accept-Language.
func Middleware(tr *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			prefs := make([]string, 0, 3)
			if q := r.URL.Query().Get(QueryParam); q != "" {
				prefs = append(prefs, q)
			}
			if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
				prefs = append(prefs, c.Value)
			}
			prefs = append(prefs, r.Header.Get("Accept-Language"))

			lang := tr.Match(prefs...)
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
