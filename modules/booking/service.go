package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/himtrails/tourbook/handler"
	"github.com/himtrails/tourbook/pkg/binder"
	"github.com/himtrails/tourbook/pkg/clientip"
	"github.com/himtrails/tourbook/pkg/cookie"
	"github.com/himtrails/tourbook/pkg/formfield"
	"github.com/himtrails/tourbook/pkg/i18n"
	"github.com/himtrails/tourbook/pkg/logger"
	"github.com/himtrails/tourbook/pkg/ratelimiter"
	"github.com/himtrails/tourbook/pkg/validator"
	svc "github.com/himtrails/tourbook/svc/booking"
)

// Field actions accepted by POST /fields/{field}/{action}.
const (
	ActionInput  = "input"
	ActionBlur   = "blur"
	ActionChange = "change"
)

// Service serves the booking page and the form endpoints behind it.
type Service struct {
	registry *svc.Registry
	cookies  *cookie.Manager
	tr       *i18n.Translator
	catalog  *svc.Catalog
	views    Views
	log      *slog.Logger
	limiter  *ratelimiter.Bucket

	errorHandler handler.ErrorHandler[handler.Context]
}

type ServiceOption func(*Service)

func WithViews(v Views) ServiceOption {
	return func(s *Service) {
		s.views = v
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCatalog sets the catalog used for select choices and GET
// /destinations. It should be the one the registry's forms use.
func WithCatalog(c *svc.Catalog) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithSubmitLimiter throttles POST /submit per client address.
func WithSubmitLimiter(b *ratelimiter.Bucket) ServiceOption {
	return func(s *Service) {
		s.limiter = b
	}
}

func NewService(registry *svc.Registry, cookies *cookie.Manager, tr *i18n.Translator, opts ...ServiceOption) *Service {
	s := &Service{
		registry: registry,
		cookies:  cookies,
		tr:       tr,
		catalog:  svc.DefaultCatalog(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.views = s.views.withDefaults()
	s.log = s.log.With(logger.Component("booking_http"))
	s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
		ErrorPage:  s.errorPage,
		ErrorToast: s.errorToast,
	})
	return s
}

// Handle returns the routes of the service, relative to its mount point.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(i18n.Middleware(s.tr))
	r.Use(s.visitor)

	r.Get("/", wrap(s, s.page))
	r.Get("/stream", wrap(s, s.stream))
	r.Get("/destinations", wrap(s, s.destinations))
	r.Post("/destinations/{slug}", wrap(s, s.selectDestination, binder.Path(chi.URLParam)))
	r.Post("/treks/{slug}", wrap(s, s.selectTrek, binder.Path(chi.URLParam)))
	r.Post("/fields/{field}/{action}", wrap(s, s.field,
		binder.Path(chi.URLParam), binder.Form(), binder.JSON(), binder.Signals()))
	r.Post("/submit", handler.Wrap(s.submit,
		handler.WithBinders[handler.Context, submitRequest](binder.Form(), binder.JSON(), binder.Signals()),
		handler.WithDecorators(handler.Decorator[handler.Context, submitRequest](s.limitSubmissions)),
		handler.WithErrorHandler[handler.Context, submitRequest](s.errorHandler),
	))
	r.Post("/dismiss", wrap(s, s.dismiss))

	return r
}

func wrap[R any](s *Service, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](s.errorHandler),
	)
}

type (
	noRequest struct{}

	slugRequest struct {
		Slug string `path:"slug"`
	}

	fieldRequest struct {
		Field  string         `path:"field"`
		Action string         `path:"action"`
		Value  *string        `form:"value" json:"value" path:"-"`
		Form   map[string]any `json:"form" form:"-" path:"-"`
	}

	submitRequest struct {
		Name     string         `form:"name" json:"name"`
		Email    string         `form:"email" json:"email"`
		Phone    string         `form:"phone" json:"phone"`
		Location string         `form:"location" json:"location"`
		Checkin  string         `form:"checkin" json:"checkin"`
		Checkout string         `form:"checkout" json:"checkout"`
		People   string         `form:"people" json:"people"`
		Message  string         `form:"message" json:"message"`
		Form     map[string]any `json:"form" form:"-"`
	}
)

// value is the field value sent with the request: the form signal for
// Datastar, the value parameter otherwise.
func (r fieldRequest) value() (string, bool) {
	if v, ok := r.Form[r.Field]; ok {
		return signalString(v), true
	}
	if r.Value != nil {
		return *r.Value, true
	}
	return "", false
}

func (r submitRequest) values() map[string]string {
	if r.Form != nil {
		out := make(map[string]string, len(r.Form))
		for name, v := range r.Form {
			out[name] = signalString(v)
		}
		return out
	}
	return map[string]string{
		svc.FieldName:     r.Name,
		svc.FieldEmail:    r.Email,
		svc.FieldPhone:    r.Phone,
		svc.FieldLocation: r.Location,
		svc.FieldCheckin:  r.Checkin,
		svc.FieldCheckout: r.Checkout,
		svc.FieldPeople:   r.People,
		svc.FieldMessage:  r.Message,
	}
}

func signalString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func (s *Service) page(ctx handler.Context, _ noRequest) handler.Response {
	return s.respond(ctx, formFrom(ctx).View(), http.StatusOK, nil)
}

// stream pushes the form to a Datastar client whenever it changes on its
// own: debounced validation, banner and notice timers, and acknowledgement.
func (s *Service) stream(ctx handler.Context, _ noRequest) handler.Response {
	form := formFrom(ctx)
	lang := i18n.GetLocale(ctx)

	return handler.SSE(func(stream handler.StreamContext) error {
		updates, cancel := form.Subscribe()
		defer cancel()

		if err := s.sendView(stream, lang, form.View(), nil); err != nil {
			return err
		}
		for {
			select {
			case <-stream.Done():
				return nil
			case _, ok := <-updates:
				if !ok {
					return nil
				}
				if err := s.sendView(stream, lang, form.View(), nil); err != nil {
					return err
				}
			}
		}
	})
}

func (s *Service) destinations(_ handler.Context, _ noRequest) handler.Response {
	return handler.JSON(s.catalog)
}

func (s *Service) selectDestination(ctx handler.Context, req slugRequest) handler.Response {
	form := formFrom(ctx)
	before := form.View()
	if _, err := form.SelectDestination(ctx, req.Slug); err != nil {
		return s.fail(err)
	}
	after := form.View()
	return s.respond(ctx, after, http.StatusOK, changedValues(before, after, ""))
}

func (s *Service) selectTrek(ctx handler.Context, req slugRequest) handler.Response {
	form := formFrom(ctx)
	if _, err := form.SelectTrek(ctx, req.Slug); err != nil {
		return s.fail(err)
	}
	return s.respond(ctx, form.View(), http.StatusOK, nil)
}

func (s *Service) field(ctx handler.Context, req fieldRequest) handler.Response {
	form := formFrom(ctx)
	value, sent := req.value()
	before := form.View()

	var err error
	switch req.Action {
	case ActionInput:
		err = form.Input(req.Field, value)
	case ActionChange:
		err = form.Change(req.Field, value)
	case ActionBlur:
		if sent {
			err = form.Set(req.Field, value)
		}
		if err == nil {
			_, err = form.Blur(req.Field)
		}
	default:
		return handler.Fail(handler.ErrNotFound)
	}
	if err != nil {
		return s.fail(err)
	}

	after := form.View()
	return s.respond(ctx, after, http.StatusOK, changedValues(before, after, req.Field))
}

// submit stores the posted values and submits the form. Datastar clients
// get the submitting state at once and the outcome on the same stream.
func (s *Service) submit(ctx handler.Context, req submitRequest) handler.Response {
	form := formFrom(ctx)
	r := ctx.Request()
	lang := i18n.GetLocale(ctx)

	if form.Status() == svc.StatusSubmitting {
		return s.fail(svc.ErrSubmissionInProgress)
	}
	for name, value := range req.values() {
		if err := form.Set(name, value); err != nil {
			return s.fail(err)
		}
	}

	fut, err := form.Submit(ctx)
	if blocked, ok := svc.IsBlocked(err); ok {
		if handler.WantsJSON(r) {
			return handler.JSONError(s.translateErrors(lang, blocked.Errors))
		}
		return s.respond(ctx, form.View(), http.StatusUnprocessableEntity, nil)
	}
	if err != nil {
		return s.fail(err)
	}

	if handler.IsDataStar(r) {
		return handler.SSE(func(stream handler.StreamContext) error {
			if err := s.sendView(stream, lang, form.View(), nil); err != nil {
				return err
			}
			c, err := fut.AwaitContext(stream)
			if stream.Err() != nil {
				return nil
			}
			if err != nil {
				return s.sendView(stream, lang, form.View(), nil)
			}
			return s.sendView(stream, lang, form.View(), map[string]any{
				"form":      formValues(form.View()),
				"reference": c.Reference,
			})
		})
	}

	c, err := fut.AwaitContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return s.fail(ctx.Err())
		}
		if handler.WantsJSON(r) {
			return handler.JSON(form.View(), handler.WithJSONStatus(http.StatusBadGateway))
		}
		return handler.Redirect("/booking")
	}
	if handler.WantsJSON(r) {
		return handler.JSON(c, handler.WithJSONStatus(http.StatusCreated))
	}
	return handler.Redirect("/booking")
}

// limitSubmissions refuses submissions once the client's bucket is empty.
// A failing limiter lets the request through.
func (s *Service) limitSubmissions(next handler.HandlerFunc[handler.Context, submitRequest]) handler.HandlerFunc[handler.Context, submitRequest] {
	if s.limiter == nil {
		return next
	}
	return func(ctx handler.Context, req submitRequest) handler.Response {
		ip := clientip.FromContext(ctx)
		if ip == "" {
			ip = clientip.NewDirect().IP(ctx.Request())
		}

		res, err := s.limiter.Allow(ctx, "submit:"+ip)
		if err != nil {
			s.log.WarnContext(ctx, "submit limiter failed", logger.Error(err))
			return next(ctx, req)
		}

		h := ctx.ResponseWriter().Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(max(res.Remaining, 0)))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		if !res.Allowed() {
			wait := math.Ceil(res.RetryAfter(time.Now()).Seconds())
			h.Set("Retry-After", strconv.Itoa(max(int(wait), 1)))
			return handler.Fail(handler.ErrTooManyRequests)
		}
		return next(ctx, req)
	}
}

func (s *Service) dismiss(ctx handler.Context, _ noRequest) handler.Response {
	form := formFrom(ctx)
	if err := form.Dismiss(); err != nil {
		return s.fail(err)
	}
	return s.respond(ctx, form.View(), http.StatusOK, nil)
}

// respond renders view for the kind of client asking. Plain form posts are
// redirected back to the page unless status reports a failure.
func (s *Service) respond(ctx handler.Context, view svc.View, status int, signals map[string]any) handler.Response {
	r := ctx.Request()
	lang := i18n.GetLocale(ctx)

	switch {
	case handler.WantsJSON(r):
		return handler.JSON(view, handler.WithJSONStatus(status))
	case handler.IsDataStar(r):
		return handler.SSE(func(stream handler.StreamContext) error {
			return s.sendView(stream, lang, view, signals)
		})
	case r.Method == http.MethodGet || status >= http.StatusBadRequest:
		return handler.TemplWithStatus(status, s.pageComponent(lang, view))
	default:
		return handler.Redirect("/booking")
	}
}

func (s *Service) sendView(stream handler.StreamContext, lang string, view svc.View, signals map[string]any) error {
	if err := stream.SendComponent(s.views.Form(s.formParams(lang, view))); err != nil {
		return err
	}
	out := make(map[string]any, len(signals)+1)
	for k, v := range signals {
		out[k] = v
	}
	if view.Focus != "" {
		out["focus"] = view.Focus
	}
	if len(out) == 0 {
		return nil
	}
	return stream.SendSignals(out)
}

// changedValues returns the form signals for values the server changed
// other than skip, so bound inputs follow them.
func changedValues(before, after svc.View, skip string) map[string]any {
	changed := make(map[string]any)
	for _, f := range after.Fields {
		if f.Name == skip {
			continue
		}
		if old, ok := before.Field(f.Name); ok && old.Value != f.Value {
			changed[f.Name] = f.Value
		}
	}
	if len(changed) == 0 {
		return nil
	}
	return map[string]any{"form": changed}
}

func formValues(view svc.View) map[string]any {
	out := make(map[string]any, len(view.Fields))
	for _, f := range view.Fields {
		out[f.Name] = f.Value
	}
	return out
}

func (s *Service) fail(err error) handler.Response {
	switch {
	case errors.Is(err, formfield.ErrUnknownField),
		errors.Is(err, svc.ErrUnknownDestination),
		errors.Is(err, svc.ErrUnknownTrek):
		return handler.Fail(errors.Join(handler.ErrNotFound, err))
	case errors.Is(err, svc.ErrSubmissionInProgress),
		errors.Is(err, svc.ErrFormClosed):
		return handler.Fail(errors.Join(handler.ErrConflict, err))
	}
	return handler.Fail(err)
}

func (s *Service) translateErrors(lang string, errs validator.ValidationErrors) validator.ValidationErrors {
	out := make(validator.ValidationErrors, 0, len(errs))
	for _, e := range errs {
		e.Message = s.tr.Td(lang, e.TranslationKey, e.Message)
		out = append(out, e)
	}
	return out
}

func fieldKind(name string) string {
	switch name {
	case svc.FieldEmail:
		return "email"
	case svc.FieldPhone:
		return "tel"
	case svc.FieldCheckin, svc.FieldCheckout:
		return "date"
	case svc.FieldLocation, svc.FieldPeople:
		return "select"
	case svc.FieldMessage:
		return "textarea"
	default:
		return "text"
	}
}

func (s *Service) choices(name string) []Choice {
	var out []Choice
	switch name {
	case svc.FieldLocation:
		for _, l := range s.catalog.Locations {
			out = append(out, Choice{Value: l.Value, Label: l.Name})
		}
	case svc.FieldPeople:
		for _, p := range s.catalog.People {
			out = append(out, Choice{Value: p.Value, Label: p.Label})
		}
	}
	return out
}

func (s *Service) formParams(lang string, view svc.View) FormParams {
	p := FormParams{
		Banner:      view.Banner,
		Notice:      view.Notice,
		Submitting:  view.Submitting,
		SubmitLabel: s.tr.T(lang, "booking.submit"),
		Fields:      make([]FieldParams, 0, len(view.Fields)),
	}
	if view.Submitting {
		p.SubmitLabel = s.tr.T(lang, "booking.submitting")
	}

	for _, f := range view.Fields {
		fp := FieldParams{
			Name:        f.Name,
			Kind:        fieldKind(f.Name),
			Label:       s.tr.Td(lang, "booking.labels."+f.Name, f.Name),
			Value:       f.Value,
			State:       string(f.State),
			Min:         f.Min,
			Placeholder: s.tr.Td(lang, "booking.placeholders."+f.Name, ""),
			Choices:     s.choices(f.Name),
			Focus:       view.Focus == f.Name,
		}
		if f.Message != "" {
			fp.Message = s.tr.Td(lang, f.Key, f.Message)
		}
		p.Fields = append(p.Fields, fp)
	}
	return p
}

func (s *Service) pageComponent(lang string, view svc.View) templ.Component {
	return s.views.Page(PageParams{
		Lang:         lang,
		Title:        s.tr.T(lang, "booking.title"),
		Form:         s.views.Form(s.formParams(lang, view)),
		Destinations: s.catalog.Destinations,
		Treks:        s.catalog.Treks,
	})
}

func (s *Service) errorPage(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p.Error = s.tr.Td(i18n.GetLocale(ctx), "errors."+p.Error, p.Error)
		return s.views.ErrorPage(p).Render(ctx, w)
	})
}

func (s *Service) errorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p.Message = s.tr.Td(i18n.GetLocale(ctx), "errors."+p.Message, p.Message)
		return s.views.ErrorToast(p).Render(ctx, w)
	})
}
