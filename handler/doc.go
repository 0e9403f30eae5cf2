// Package handler turns typed functions into http.HandlerFunc values.
//
// A handler receives a Context and a request struct filled by binders, and
// returns a Response:
//
//	func input(ctx handler.Context, req InputRequest) handler.Response {
//		view, err := forms.Input(ctx, req.Field, req.Value)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.Templ(views.Field(view), handler.WithTarget("#field-"+req.Field))
//	}
//
//	r.Post("/fields/{field}/input", handler.Wrap(input,
//		handler.WithBinders[handler.Context, InputRequest](binder.Path(chi.URLParam), binder.Form()),
//	))
//
// # Responses
//
// Templ and TemplWithStatus render templ components as HTML, or as
// Datastar element patches when the request comes from Datastar. SSE
// keeps a stream open for pushing patches and signals. JSON wraps data in
// a JSONResponse envelope; JSONError maps validator.ValidationErrors to 422
// with per-field details and HTTPError to its own status. Redirect covers
// plain form posts.
//
// # Errors
//
// Binding and rendering failures go to the ErrorHandler. The default writes
// a plain status; NewErrorHandler logs the failure and renders a toast or
// an error page.
package handler
