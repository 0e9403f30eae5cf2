package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/himtrails/tourbook/pkg/environment"
	"github.com/himtrails/tourbook/pkg/logger"
	"github.com/himtrails/tourbook/pkg/requestid"
	"github.com/himtrails/tourbook/pkg/validator"
)

type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
	// Detail is the raw error, set only in development.
	Detail string
}

type ErrorToastParams struct {
	Message   string
	Type      string // "error", "warning" or "info"
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorPage renders the page for plain HTTP requests.
	ErrorPage func(ErrorPageParams) templ.Component
	// ErrorToast renders the toast for Datastar requests.
	ErrorToast func(ErrorToastParams) templ.Component

	ToastTarget string // default "#toast-container"
	ToastMode   datastar.ElementPatchMode
}

// ErrorInfo is the classification of an error.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Type       string
	LogLevel   slog.Level
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: statusOf(err),
		Code:       ErrInternalServerError.Key,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.Code = httpErr.Key
		info.Message = httpErr.Key
	}

	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		info.Code = ErrUnprocessableEntity.Key
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, e.Field+": "+e.Message)
		}
		info.Message = strings.Join(msgs, "; ")
	}

	switch {
	case info.StatusCode >= http.StatusInternalServerError:
		info.Type = "error"
		info.LogLevel = slog.LevelError
	case info.StatusCode >= http.StatusBadRequest:
		info.Type = "warning"
		info.LogLevel = slog.LevelWarn
	default:
		info.Type = "info"
		info.LogLevel = slog.LevelInfo
	}
	return info
}

// NewErrorHandler returns an ErrorHandler that logs err and then renders a
// JSON error for JSON clients, a toast for Datastar requests or an error
// page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if WantsJSON(r) {
			if rerr := JSONError(err).Render(ctx.ResponseWriter(), r); rerr != nil {
				log.Error("failed to render error body", logger.Error(rerr))
			}
			return
		}

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				return
			}
			resp := Templ(cfg.ErrorToast(ErrorToastParams{
				Message:   info.Message,
				Type:      info.Type,
				RequestID: reqID,
			}), WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
			if rerr := resp.Render(ctx.ResponseWriter(), r); rerr != nil {
				log.Error("failed to render error toast", logger.Error(rerr))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
			return
		}
		params := ErrorPageParams{
			Error:      info.Message,
			StatusCode: info.StatusCode,
			RequestID:  reqID,
			RetryURL:   r.URL.Path,
		}
		if environment.IsDevelopment(r.Context()) {
			params.Detail = err.Error()
		}
		resp := TemplWithStatus(info.StatusCode, cfg.ErrorPage(params))
		if rerr := resp.Render(ctx.ResponseWriter(), r); rerr != nil {
			log.Error("failed to render error page", logger.Error(rerr))
		}
	}
}
