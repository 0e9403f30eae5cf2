package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/himtrails/tourbook/pkg/async"
	"github.com/himtrails/tourbook/pkg/formfield"
	"github.com/himtrails/tourbook/pkg/i18n"
	"github.com/himtrails/tourbook/pkg/logger"
	"github.com/himtrails/tourbook/pkg/scheduler"
	"github.com/himtrails/tourbook/pkg/statemachine"
	"github.com/himtrails/tourbook/pkg/validator"
)

const (
	taskBanner = "banner"
	taskNotice = "notice"
)

func validateTask(field string) string { return "validate:" + field }

type fieldUI struct {
	state formfield.State
	err   *validator.ValidationError
	shown bool
}

// Form is one visitor's booking form. It is safe for concurrent use.
type Form struct {
	cfg Config
	opt options
	log *slog.Logger
	loc *time.Location

	sched  *scheduler.Scheduler
	status *statemachine.Machine[Status, event]
	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	fields      *formfield.FieldSet
	ui          map[string]fieldUI
	checkoutMin string
	banner      *Banner
	notice      *Notice
	focus       string
	reference   string
	pending     *async.Future[Confirmation]
	lastActive  time.Time
	closed      bool

	subMu   sync.Mutex
	subs    map[uint64]chan struct{}
	nextSub uint64
}

func NewForm(cfg Config, opts ...Option) (*Form, error) {
	loc, err := cfg.location()
	if err != nil {
		return nil, err
	}
	o := buildOptions(cfg, opts)
	log := o.logger.With(logger.Component("booking"))

	ctx, cancel := context.WithCancel(context.Background())
	f := &Form{
		cfg:        cfg,
		opt:        o,
		log:        log,
		loc:        loc,
		sched:      scheduler.New(scheduler.WithLogger(log)),
		status:     newStatusMachine(),
		ctx:        ctx,
		cancel:     cancel,
		fields:     NewFieldSet(o.now, loc),
		subs:       make(map[uint64]chan struct{}),
		lastActive: o.now(),
	}
	f.resetUI()
	return f, nil
}

func (f *Form) resetUI() {
	f.ui = make(map[string]fieldUI, f.fields.Len())
	for _, name := range f.fields.Names() {
		f.ui[name] = fieldUI{state: formfield.StateUntouched}
	}
}

// begin locks the form for a visitor action. The caller must unlock.
func (f *Form) begin() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFormClosed
	}
	f.lastActive = f.opt.now()
	f.focus = ""
	return nil
}

func (f *Form) lang(ctx context.Context) string {
	if l, ok := i18n.LookupLocale(ctx); ok {
		return l
	}
	return f.cfg.Language
}

func (f *Form) apply(r formfield.Result) {
	f.ui[r.Field] = fieldUI{state: formfield.StateOf(r), err: r.Error, shown: !r.Valid}
}

// scheduleValidation validates field after delay, replacing a validation
// already pending for it.
func (f *Form) scheduleValidation(field string, delay time.Duration) error {
	return f.sched.Schedule(validateTask(field), delay, func(ctx context.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.closed || ctx.Err() != nil {
			return
		}
		f.apply(formfield.ValidateField(field, f.fields))
		f.notify()
	})
}

// Input records a keystroke: the value changes, the displayed error is
// cleared and validation runs once typing pauses for DebounceDelay.
func (f *Form) Input(name, value string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.mu.Unlock()

	if err := f.fields.Set(name, value); err != nil {
		return err
	}
	ui := f.ui[name]
	ui.shown = false
	f.ui[name] = ui
	f.notify()
	return f.scheduleValidation(name, f.cfg.DebounceDelay)
}

// Set updates a value without validating it.
func (f *Form) Set(name, value string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.mu.Unlock()
	return f.fields.Set(name, value)
}

// Blur validates the field now, dropping any pending debounced validation.
func (f *Form) Blur(name string) (formfield.Result, error) {
	if err := f.begin(); err != nil {
		return formfield.Result{}, err
	}
	defer f.mu.Unlock()

	if !f.fields.Has(name) {
		return formfield.Result{}, fmt.Errorf("%w: %s", formfield.ErrUnknownField, name)
	}
	f.sched.Cancel(validateTask(name))
	r := formfield.ValidateField(name, f.fields)
	f.apply(r)
	f.notify()
	return r, nil
}

// Change commits a value. A new check-in date moves the earliest allowed
// check-out to the next day and clears a check-out that is no longer after
// it; a check-out that survives is re-validated after RevalidateDelay.
func (f *Form) Change(name, value string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.mu.Unlock()

	if err := f.fields.Set(name, value); err != nil {
		return err
	}
	if name == FieldCheckin {
		if err := f.propagateCheckin(); err != nil {
			return err
		}
	}
	f.notify()
	return nil
}

func (f *Form) propagateCheckin() error {
	in, err := validator.ParseDate(f.fields.Value(FieldCheckin), f.loc)
	if err != nil {
		f.checkoutMin = ""
		if f.fields.Value(FieldCheckout) != "" {
			return f.scheduleValidation(FieldCheckout, f.cfg.RevalidateDelay)
		}
		return nil
	}
	f.checkoutMin = in.AddDate(0, 0, 1).Format(validator.DateLayout)

	current := f.fields.Value(FieldCheckout)
	if current == "" {
		return nil
	}
	if out, err := validator.ParseDate(current, f.loc); err == nil && !out.After(in) {
		_ = f.fields.Set(FieldCheckout, "")
		f.ui[FieldCheckout] = fieldUI{state: formfield.StateUntouched}
		f.sched.Cancel(validateTask(FieldCheckout))
		f.log.Debug("checkout cleared", logger.Field(FieldCheckout), logger.Event("checkin_changed"))
		return nil
	}
	return f.scheduleValidation(FieldCheckout, f.cfg.RevalidateDelay)
}

// SelectDestination handles a click on a destination card: the mapped
// location is filled in and marked valid, and a notice is shown.
func (f *Form) SelectDestination(ctx context.Context, slug string) (Destination, error) {
	d, ok := f.opt.catalog.Destination(slug)
	if !ok {
		return Destination{}, fmt.Errorf("%w: %s", ErrUnknownDestination, slug)
	}
	if err := f.begin(); err != nil {
		return Destination{}, err
	}
	defer f.mu.Unlock()

	if d.Location != "" {
		_ = f.fields.Set(FieldLocation, d.Location)
		f.sched.Cancel(validateTask(FieldLocation))
		f.ui[FieldLocation] = fieldUI{state: formfield.StateValid}
	}
	f.showNotice(f.opt.tr.T(f.lang(ctx), keyNoticeDest, "title", d.Title, "price", d.Price))
	f.notify()
	return d, nil
}

// SelectTrek shows the notice for a trek card. Treks do not prefill the form.
func (f *Form) SelectTrek(ctx context.Context, slug string) (Trek, error) {
	t, ok := f.opt.catalog.Trek(slug)
	if !ok {
		return Trek{}, fmt.Errorf("%w: %s", ErrUnknownTrek, slug)
	}
	if err := f.begin(); err != nil {
		return Trek{}, err
	}
	defer f.mu.Unlock()

	f.showNotice(f.opt.tr.T(f.lang(ctx), keyNoticeTrek, "title", t.Title, "price", t.Price))
	f.notify()
	return t, nil
}

// Submit validates every field. With errors it returns a *BlockedError and
// shows the error banner. Otherwise the enquiry is handed to the
// Acknowledger in the background and the returned future resolves with the
// Confirmation, after which the form is reset.
func (f *Form) Submit(ctx context.Context) (*async.Future[Confirmation], error) {
	lang := f.lang(ctx)
	if err := f.begin(); err != nil {
		return nil, err
	}
	defer f.mu.Unlock()

	if f.status.Current() == StatusSubmitting {
		return nil, ErrSubmissionInProgress
	}

	for _, name := range f.fields.Names() {
		f.sched.Cancel(validateTask(name))
	}
	results := formfield.ValidateAll(f.fields)
	for _, r := range results {
		f.apply(r)
	}

	if err := f.status.Fire(ctx, eventSubmit, results); err != nil {
		if errors.Is(err, statemachine.ErrNoTransitionAvailable) {
			return nil, ErrSubmissionInProgress
		}
		return nil, err
	}

	if !results.OK() {
		first, _ := results.FirstInvalid()
		verrs, _ := results.Err().(validator.ValidationErrors)
		f.focus = first.Field
		f.showBanner(BannerError, keyBannerBlocked, f.opt.tr.T(lang, keyBannerBlocked), f.cfg.ErrorTTL)
		f.notify()
		f.opt.observer.Submission(OutcomeBlocked, 0)
		f.log.InfoContext(ctx, "submission blocked", logger.Field(first.Field), logger.Error(verrs))
		return nil, &BlockedError{Focus: first.Field, Errors: verrs}
	}

	f.hideBanner()
	enquiry := enquiryFrom(f.fields.Values())
	fut := async.Async(f.ctx, enquiry, func(ctx context.Context, e Enquiry) (c Confirmation, err error) {
		start := time.Now()
		// The form must leave Submitting even when the acknowledger panics.
		defer func() {
			if r := recover(); r != nil {
				c, err = Confirmation{}, fmt.Errorf("%w: %v", ErrAcknowledgementPanicked, r)
			}
			f.settle(c, err, lang, time.Since(start))
		}()
		c, err = f.opt.ack.Acknowledge(ctx, e)
		if err == nil {
			c.Message = composeConfirmation(f.opt.tr, lang, f.opt.catalog, e)
		}
		return c, err
	})
	f.pending = fut
	f.notify()
	f.log.InfoContext(ctx, "submission started", logger.Status(StatusSubmitting))
	return fut, nil
}

func (f *Form) settle(c Confirmation, err error, lang string, elapsed time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pending = nil
	if f.closed {
		return
	}

	if err != nil {
		_ = f.status.Fire(f.ctx, eventFailed, err)
		f.opt.observer.Submission(OutcomeFailed, elapsed)
		f.log.Error("acknowledgement failed", logger.Error(err))
		f.showBanner(BannerError, keyBannerFailed, f.opt.tr.T(lang, keyBannerFailed), f.cfg.ErrorTTL)
		f.notify()
		return
	}

	_ = f.status.Fire(f.ctx, eventAcknowledged, c)
	f.opt.observer.Submission(OutcomeAcknowledged, elapsed)
	f.reference = c.Reference
	f.fields.Clear()
	f.resetUI()
	f.checkoutMin = ""
	f.showBanner(BannerSuccess, keyBannerSuccess, c.Message, f.cfg.SuccessTTL)
	f.notify()
	f.log.Info("enquiry acknowledged", logger.Reference(c.Reference), logger.Status(StatusSuccess))
}

// Dismiss hides an error banner and the notice. A success banner stays.
func (f *Form) Dismiss() error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.mu.Unlock()

	if f.banner != nil && f.banner.Kind == BannerError {
		f.hideBanner()
	}
	if f.notice != nil {
		f.notice = nil
		f.sched.Cancel(taskNotice)
	}
	f.notify()
	return nil
}

func (f *Form) showBanner(kind BannerKind, key, message string, ttl time.Duration) {
	f.banner = &Banner{Kind: kind, Message: message, Key: key}
	err := f.sched.Schedule(taskBanner, ttl, func(ctx context.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.closed || ctx.Err() != nil {
			return
		}
		f.banner = nil
		f.notify()
	})
	if err != nil {
		f.log.Warn("banner timer not scheduled", logger.Error(err))
	}
}

func (f *Form) hideBanner() {
	f.banner = nil
	f.sched.Cancel(taskBanner)
}

// showNotice displays message for NoticeTTL, then marks it fading for
// NoticeFade before removing it. A newer notice restarts the sequence.
func (f *Form) showNotice(message string) {
	f.notice = &Notice{Message: message}
	err := f.sched.Schedule(taskNotice, f.cfg.NoticeTTL, func(ctx context.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.closed || ctx.Err() != nil || f.notice == nil {
			return
		}
		f.notice.Fading = true
		f.notify()
		err := f.sched.Schedule(taskNotice, f.cfg.NoticeFade, func(ctx context.Context) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.closed || ctx.Err() != nil {
				return
			}
			f.notice = nil
			f.notify()
		})
		if err != nil {
			f.log.Warn("notice fade not scheduled", logger.Error(err))
		}
	})
	if err != nil {
		f.log.Warn("notice timer not scheduled", logger.Error(err))
	}
}

// View returns a snapshot for rendering.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	today := todayIn(f.opt.now(), f.loc)
	v := View{
		Fields:     make([]FieldView, 0, f.fields.Len()),
		Status:     f.status.Current(),
		Focus:      f.focus,
		Submitting: f.status.Current() == StatusSubmitting,
		Reference:  f.reference,
	}
	for _, name := range f.fields.Names() {
		ui := f.ui[name]
		fv := FieldView{Name: name, Value: f.fields.Value(name), State: ui.state}
		if ui.shown && ui.err != nil {
			fv.Message = ui.err.Message
			fv.Key = ui.err.TranslationKey
		}
		switch name {
		case FieldCheckin:
			fv.Min = today
		case FieldCheckout:
			fv.Min = today
			if f.checkoutMin != "" {
				fv.Min = f.checkoutMin
			}
		}
		v.Fields = append(v.Fields, fv)
	}
	if f.banner != nil {
		b := *f.banner
		v.Banner = &b
	}
	if f.notice != nil {
		n := *f.notice
		v.Notice = &n
	}
	return v
}

func todayIn(now time.Time, loc *time.Location) string {
	return validator.StartOfDay(now.In(loc)).Format(validator.DateLayout)
}

func (f *Form) Status() Status {
	return f.status.Current()
}

// LastActive returns the time of the last visitor action.
func (f *Form) LastActive() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastActive
}

// Subscribe returns a channel that receives a value after every change.
// Notifications coalesce when the reader is slow. The channel is closed by
// the returned cancel func or by Close.
func (f *Form) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	f.subMu.Lock()
	defer f.subMu.Unlock()
	if f.subs == nil {
		close(ch)
		return ch, func() {}
	}
	id := f.nextSub
	f.nextSub++
	f.subs[id] = ch

	return ch, func() {
		f.subMu.Lock()
		defer f.subMu.Unlock()
		if c, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(c)
		}
	}
}

func (f *Form) notify() {
	f.subMu.Lock()
	defer f.subMu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close stops the form's timers, cancels a pending acknowledgement and
// closes subscriber channels. It waits for running timer tasks.
func (f *Form) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	pending := f.pending
	f.mu.Unlock()

	f.cancel()
	f.sched.Stop()
	if pending != nil {
		<-pending.Done()
	}

	f.subMu.Lock()
	for _, ch := range f.subs {
		close(ch)
	}
	f.subs = nil
	f.subMu.Unlock()
}
