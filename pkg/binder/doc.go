// Package binder fills request structs from HTTP requests.
//
// Each binder reads one source, selected by struct tag:
//
//	type InputRequest struct {
//		Field string `path:"field"`
//		Value string `form:"value" json:"value"`
//		Lang  string `query:"lang"`
//	}
//
// Form and JSON check the Content-Type and Signals checks the Datastar
// request header. When the request carries nothing for them they return
// ErrNotApplicable, so several body binders can be listed and only the
// matching one runs:
//
//	handler.WithBinders[handler.Context, InputRequest](
//		binder.Path(chi.URLParam),
//		binder.Query(),
//		binder.Form(),
//		binder.JSON(),
//		binder.Signals(),
//	)
//
// Supported field types are strings, signed and unsigned integers, floats,
// bools, pointers to those, and slices of those. Slices accept repeated
// parameters and comma-separated values.
package binder
