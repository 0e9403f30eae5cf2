package booking

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/himtrails/tourbook/handler"
	svc "github.com/himtrails/tourbook/svc/booking"
)

// Choice is an option of a select field.
type Choice struct {
	Value string
	Label string
}

// FieldParams is one translated form control.
type FieldParams struct {
	Name        string
	Kind        string // text, email, tel, date, select or textarea
	Label       string
	Value       string
	State       string
	Message     string
	Min         string
	Placeholder string
	Choices     []Choice
	Focus       bool
}

type FormParams struct {
	Fields      []FieldParams
	Banner      *svc.Banner
	Notice      *svc.Notice
	Submitting  bool
	SubmitLabel string
}

type PageParams struct {
	Lang         string
	Title        string
	Form         templ.Component
	Destinations []svc.Destination
	Treks        []svc.Trek
}

// Views renders the booking pages. Zero fields fall back to DefaultViews.
type Views struct {
	Page       func(PageParams) templ.Component
	Form       func(FormParams) templ.Component
	ErrorPage  func(handler.ErrorPageParams) templ.Component
	ErrorToast func(handler.ErrorToastParams) templ.Component
}

func DefaultViews() Views {
	return Views{
		Page:       pageView,
		Form:       formView,
		ErrorPage:  errorPageView,
		ErrorToast: errorToastView,
	}
}

func (v Views) withDefaults() Views {
	d := DefaultViews()
	if v.Page == nil {
		v.Page = d.Page
	}
	if v.Form == nil {
		v.Form = d.Form
	}
	if v.ErrorPage == nil {
		v.ErrorPage = d.ErrorPage
	}
	if v.ErrorToast == nil {
		v.ErrorToast = d.ErrorToast
	}
	return v
}

// markup writes HTML and keeps the first write error.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(parts ...string) {
	for _, p := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, p)
	}
}

func (m *markup) text(s string) { m.raw(templ.EscapeString(s)) }

func (m *markup) attr(name, value string) {
	m.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (m *markup) flag(name string, on bool) {
	if on {
		m.raw(" ", name)
	}
}

func fieldURL(name, action string) string {
	return "@post('/booking/fields/" + name + "/" + action + "')"
}

func formView(p FormParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw(`<form id="booking-form" class="booking-form" method="post" action="/booking/submit"`)
		m.attr("data-on-submit", "@post('/booking/submit')")
		m.raw(">")

		for _, f := range p.Fields {
			writeField(m, f)
		}

		m.raw(`<button id="submit-btn" type="submit" class="btn btn--primary"`)
		m.flag("disabled", p.Submitting)
		m.raw(">")
		if p.Submitting {
			m.raw(`<span class="btn-loading">`)
		} else {
			m.raw(`<span class="btn-text">`)
		}
		m.text(p.SubmitLabel)
		m.raw("</span></button>")

		if p.Banner != nil {
			m.raw(`<div id="form-message" role="status"`)
			m.attr("class", "form-message show "+string(p.Banner.Kind))
			m.raw(">")
			m.text(p.Banner.Message)
			m.raw("</div>")
		} else {
			m.raw(`<div id="form-message" class="form-message"></div>`)
		}

		if p.Notice != nil {
			cls := "temp-message"
			if p.Notice.Fading {
				cls += " fading"
			}
			m.raw(`<div id="notice" role="status"`)
			m.attr("class", cls)
			m.raw(">")
			m.text(p.Notice.Message)
			m.raw("</div>")
		} else {
			m.raw(`<div id="notice"></div>`)
		}

		m.raw("</form>")
		return m.err
	})
}

func writeField(m *markup, f FieldParams) {
	m.raw(`<div class="form-group"`)
	m.attr("id", "field-"+f.Name)
	m.raw(`><label`)
	m.attr("for", f.Name)
	m.raw(">")
	m.text(f.Label)
	m.raw("</label>")

	cls := "form-control"
	if f.State != "" && f.State != "untouched" {
		cls += " " + f.State
	}

	common := func() {
		m.attr("id", f.Name)
		m.attr("name", f.Name)
		m.attr("class", cls)
		m.attr("data-bind", "form."+f.Name)
		m.attr("data-on-input", fieldURL(f.Name, "input"))
		m.attr("data-on-blur", fieldURL(f.Name, "blur"))
		m.attr("data-on-change", fieldURL(f.Name, "change"))
		m.flag("autofocus", f.Focus)
	}

	switch f.Kind {
	case "select":
		m.raw("<select")
		common()
		m.raw(`><option value="">`)
		m.text(f.Placeholder)
		m.raw("</option>")
		for _, c := range f.Choices {
			m.raw("<option")
			m.attr("value", c.Value)
			m.flag("selected", c.Value == f.Value)
			m.raw(">")
			m.text(c.Label)
			m.raw("</option>")
		}
		m.raw("</select>")
	case "textarea":
		m.raw("<textarea")
		common()
		m.raw(">")
		m.text(f.Value)
		m.raw("</textarea>")
	default:
		m.raw("<input")
		m.attr("type", f.Kind)
		common()
		m.attr("value", f.Value)
		if f.Min != "" {
			m.attr("min", f.Min)
		}
		m.raw(">")
	}

	m.raw(`<div class="form-error`)
	if f.Message != "" {
		m.raw(" show")
	}
	m.raw(`"`)
	m.attr("id", f.Name+"-error")
	m.raw(">")
	m.text(f.Message)
	m.raw("</div></div>")
}

func pageView(p PageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw("<!DOCTYPE html><html")
		m.attr("lang", p.Lang)
		m.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		m.text(p.Title)
		m.raw(`</title><script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0-RC.5/bundles/datastar.js"></script></head>`)
		m.raw(`<body data-on-load="@get('/booking/stream')"`)
		m.attr("data-on-keydown__window", "evt.key === 'Escape' && @post('/booking/dismiss')")
		m.raw(">")

		m.raw(`<section id="destinations" class="destinations">`)
		for _, d := range p.Destinations {
			m.raw(`<article class="destination-card"`)
			m.attr("data-destination", d.Slug)
			m.attr("data-on-click", "@post('/booking/destinations/"+d.Slug+"')")
			m.raw(`><h3 class="destination-card__title">`)
			m.text(d.Title)
			m.raw(`</h3><p class="destination-card__price">`)
			m.text(d.Price)
			m.raw("</p></article>")
		}
		m.raw("</section>")

		m.raw(`<section id="treks" class="treks">`)
		for _, t := range p.Treks {
			m.raw(`<article class="trek-card"`)
			m.attr("data-on-click", "@post('/booking/treks/"+t.Slug+"')")
			m.raw(`><h3 class="trek-card__title">`)
			m.text(t.Title)
			m.raw(`</h3><p class="trek-card__price">`)
			m.text(t.Price)
			m.raw("</p></article>")
		}
		m.raw("</section>")

		m.raw(`<section id="booking" class="booking"><h2>`)
		m.text(p.Title)
		m.raw("</h2>")
		if m.err != nil {
			return m.err
		}
		if p.Form != nil {
			if err := p.Form.Render(ctx, w); err != nil {
				return err
			}
		}
		m.raw(`</section><div id="toast-container"></div></body></html>`)
		return m.err
	})
}

func errorPageView(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>Error</title></head><body><main class="error-page"><h1>`)
		m.text(p.Error)
		m.raw("</h1>")
		if p.RequestID != "" {
			m.raw(`<p class="request-id">`)
			m.text(p.RequestID)
			m.raw("</p>")
		}
		if p.Detail != "" {
			m.raw(`<pre class="error-detail">`)
			m.text(p.Detail)
			m.raw("</pre>")
		}
		m.raw(`<a href="/booking">Back to booking</a></main></body></html>`)
		return m.err
	})
}

func errorToastView(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw("<div")
		m.attr("class", "toast toast--"+p.Type)
		m.raw(">")
		m.text(p.Message)
		m.raw("</div>")
		return m.err
	})
}
