package booking

import (
	"context"
	"net/http"

	"github.com/himtrails/tourbook/handler"
	"github.com/himtrails/tourbook/pkg/logger"
	svc "github.com/himtrails/tourbook/svc/booking"
)

// VisitorCookie holds the signed visitor id.
const VisitorCookie = "tourbook_visitor"

type formKey struct{}

// visitor opens the visitor's form and stores it in the request context.
func (s *Service) visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := s.cookies.GetSigned(r, VisitorCookie)

		opened, form, err := s.registry.Open(id)
		if err != nil {
			s.log.ErrorContext(r.Context(), "failed to open booking form", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		if opened != id {
			s.cookies.SetSigned(w, VisitorCookie, opened)
			s.log.InfoContext(r.Context(), "visitor session started", logger.SessionID(opened))
		}

		ctx := context.WithValue(r.Context(), formKey{}, form)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func formFrom(ctx context.Context) *svc.Form {
	return handler.ContextValue[*svc.Form](ctx, formKey{})
}
