package binder

import "net/http"

// Path binds route parameters using `path` tags. extract is the router's
// lookup, for chi that is chi.URLParam:
//
//	binder.Path(chi.URLParam)
func Path(extract func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extract == nil {
			return ErrNotApplicable
		}
		return eachField(v, "path", ErrFailedToParsePath, func(name string) []string {
			if s := extract(r, name); s != "" {
				return []string{s}
			}
			return nil
		})
	}
}
