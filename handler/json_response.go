package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/himtrails/tourbook/pkg/validator"
)

// JSONResponse is the envelope of every JSON body.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failure. Details maps field names to messages.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

// JSON wraps v in the envelope. Errors are rendered as with JSONError.
func JSON(v any, opts ...JSONOption) Response {
	if err, ok := v.(error); ok {
		return JSONError(err, opts...)
	}
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err with a status derived from its type:
// validator.ValidationErrors become 422 with per-field details, HTTPError
// keeps its code, anything else is 500.
func JSONError(err error, opts ...JSONOption) Response {
	info := classifyError(err)
	detail := &ErrorDetail{Code: info.Code, Message: info.Message}

	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		detail.Details = make(map[string][]string)
		for _, f := range verrs.Fields() {
			detail.Details[f] = verrs.Get(f)
		}
	}

	r := &jsonResponse{status: info.StatusCode, body: JSONResponse{Error: detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WantsJSON reports whether the client asked for JSON and is not Datastar.
func WantsJSON(r *http.Request) bool {
	if IsDataStar(r) {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// statusOf returns the status an error maps to.
func statusOf(err error) int {
	var httpErr HTTPError
	switch {
	case validator.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.As(err, &httpErr):
		return httpErr.Code
	default:
		return http.StatusInternalServerError
	}
}
