package booking

import (
	"log/slog"
	"time"

	"github.com/himtrails/tourbook/pkg/i18n"
)

type options struct {
	logger   *slog.Logger
	now      func() time.Time
	ack      Acknowledger
	tr       *i18n.Translator
	catalog  *Catalog
	observer Observer
}

// Option configures a Form or, through it, every Form of a Registry.
type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock replaces time.Now for "today" and activity tracking. Timers
// always run on the wall clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithAcknowledger replaces the SimulatedAcknowledger.
func WithAcknowledger(a Acknowledger) Option {
	return func(o *options) {
		if a != nil {
			o.ack = a
		}
	}
}

func WithTranslator(tr *i18n.Translator) Option {
	return func(o *options) {
		if tr != nil {
			o.tr = tr
		}
	}
}

func WithCatalog(c *Catalog) Option {
	return func(o *options) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithObserver reports session and submission events to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func buildOptions(cfg Config, opts []Option) options {
	o := options{logger: slog.Default(), now: time.Now, observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tr == nil {
		o.tr = DefaultTranslator()
	}
	if o.catalog == nil {
		o.catalog = DefaultCatalog()
	}
	if o.ack == nil {
		o.ack = SimulatedAcknowledger{Delay: cfg.SubmitDelay, Now: o.now}
	}
	return o
}
