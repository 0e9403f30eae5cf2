package formfield

import "github.com/himtrails/tourbook/pkg/validator"

// State is the display state of a field.
type State string

const (
	StateUntouched State = "untouched"
	StateValid     State = "valid"
	StateInvalid   State = "invalid"
)

// Result is the outcome of validating one field. Error is set only when the
// field is invalid and describes the first rule that failed.
type Result struct {
	Field string
	Valid bool
	Error *validator.ValidationError
}

// Message returns the failing rule's message, or "" for valid results.
func (r Result) Message() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Message
}

// TranslationKey returns the failing rule's translation key, or "".
func (r Result) TranslationKey() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.TranslationKey
}

// StateOf maps a result onto a display state.
func StateOf(r Result) State {
	if r.Valid {
		return StateValid
	}
	return StateInvalid
}

// Results holds per-field results in registration order.
type Results []Result

// OK reports whether every field is valid.
func (rs Results) OK() bool {
	for _, r := range rs {
		if !r.Valid {
			return false
		}
	}
	return true
}

func (rs Results) Get(field string) (Result, bool) {
	for _, r := range rs {
		if r.Field == field {
			return r, true
		}
	}
	return Result{}, false
}

// FirstInvalid returns the first invalid result in form order.
func (rs Results) FirstInvalid() (Result, bool) {
	for _, r := range rs {
		if !r.Valid {
			return r, true
		}
	}
	return Result{}, false
}

// Err returns the failures as validator.ValidationErrors, or nil when OK.
func (rs Results) Err() error {
	var errs validator.ValidationErrors
	for _, r := range rs {
		if !r.Valid && r.Error != nil {
			errs.Add(*r.Error)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}
