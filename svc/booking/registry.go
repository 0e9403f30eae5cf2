package booking

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/himtrails/tourbook/pkg/logger"
	"github.com/himtrails/tourbook/pkg/scheduler"
)

const taskSweep = "sweep"

// Registry keeps one Form per visitor and closes forms that stay idle
// longer than Config.SessionTTL.
type Registry struct {
	cfg   Config
	opts  []Option
	o     options
	log   *slog.Logger
	sched *scheduler.Scheduler

	mu     sync.Mutex
	forms  map[string]*Form
	closed bool
}

func NewRegistry(cfg Config, opts ...Option) (*Registry, error) {
	if _, err := cfg.location(); err != nil {
		return nil, err
	}
	o := buildOptions(cfg, opts)
	log := o.logger.With(logger.Component("booking_registry"))

	r := &Registry{
		cfg:   cfg,
		opts:  opts,
		o:     o,
		log:   log,
		sched: scheduler.New(scheduler.WithLogger(log)),
		forms: make(map[string]*Form),
	}
	if cfg.SessionTTL > 0 && cfg.SweepInterval > 0 {
		if err := r.scheduleSweep(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Open returns the form for id, creating it when needed. An id that is not
// a UUID is replaced by a fresh one; the id actually used is returned.
func (r *Registry) Open(id string) (string, *Form, error) {
	if _, err := uuid.Parse(id); err != nil {
		fresh, err := uuid.NewV7()
		if err != nil {
			return "", nil, err
		}
		id = fresh.String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return "", nil, ErrFormClosed
	}
	if f, ok := r.forms[id]; ok {
		return id, f, nil
	}

	opts := append(append([]Option(nil), r.opts...),
		WithLogger(r.o.logger.With(logger.SessionID(id))),
		WithTranslator(r.o.tr),
		WithCatalog(r.o.catalog),
	)
	f, err := NewForm(r.cfg, opts...)
	if err != nil {
		return "", nil, err
	}
	r.forms[id] = f
	r.o.observer.SessionOpened()
	r.log.Debug("session opened", logger.SessionID(id))
	return id, f, nil
}

// Get returns an existing form.
func (r *Registry) Get(id string) (*Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.forms[id]; ok {
		return f, nil
	}
	return nil, ErrSessionNotFound
}

// Remove closes and forgets the form for id.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	f, ok := r.forms[id]
	delete(r.forms, id)
	r.mu.Unlock()

	if ok {
		f.Close()
		r.o.observer.SessionClosed()
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

func (r *Registry) scheduleSweep() error {
	return r.sched.Schedule(taskSweep, r.cfg.SweepInterval, func(ctx context.Context) {
		r.Sweep()
		if ctx.Err() == nil {
			if err := r.scheduleSweep(); err != nil {
				r.log.Warn("sweep not rescheduled", logger.Error(err))
			}
		}
	})
}

// Sweep closes forms idle for longer than SessionTTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	now := r.o.now()

	r.mu.Lock()
	var expired []*Form
	for id, f := range r.forms {
		if now.Sub(f.LastActive()) > r.cfg.SessionTTL {
			expired = append(expired, f)
			delete(r.forms, id)
		}
	}
	r.mu.Unlock()

	for _, f := range expired {
		f.Close()
		r.o.observer.SessionClosed()
	}
	if len(expired) > 0 {
		r.log.Info("expired sessions closed", slog.Int("count", len(expired)))
	}
	return len(expired)
}

// Check reports whether the registry still accepts sessions. It fits
// httpserver.Check.
func (r *Registry) Check(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrFormClosed
	}
	return nil
}

// Close stops the sweep and closes every form.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	forms := r.forms
	r.forms = make(map[string]*Form)
	r.mu.Unlock()

	r.sched.Stop()
	for _, f := range forms {
		f.Close()
		r.o.observer.SessionClosed()
	}
}
