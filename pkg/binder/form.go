package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxFormSize limits urlencoded bodies.
const DefaultMaxFormSize = 1 << 20

// Form binds application/x-www-form-urlencoded bodies using `form` tags.
// Requests with another content type return ErrNotApplicable.
//
//	type InputRequest struct {
//		Value string `form:"value"`
//	}
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType != "application/x-www-form-urlencoded" {
			return ErrNotApplicable
		}

		r.Body = http.MaxBytesReader(nil, r.Body, DefaultMaxFormSize)
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		return bindToStruct(v, "form", r.PostForm, ErrFailedToParseForm)
	}
}
