package binder

import "errors"

var (
	// ErrNotApplicable tells the caller the request carries nothing for this
	// binder, so the next one should run.
	ErrNotApplicable = errors.New("binder: not applicable")

	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrFailedToParseJSON    = errors.New("binder: failed to parse JSON request body")
	ErrFailedToParseForm    = errors.New("binder: failed to parse form data")
	ErrFailedToParseQuery   = errors.New("binder: failed to parse query parameters")
	ErrFailedToParsePath    = errors.New("binder: failed to parse path parameters")
	ErrFailedToReadSignals  = errors.New("binder: failed to read datastar signals")
	ErrInvalidTarget        = errors.New("binder: target must be a non-nil pointer to struct")
)
