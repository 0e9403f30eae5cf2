package booking

import (
	"errors"
	"fmt"

	"github.com/himtrails/tourbook/pkg/validator"
)

var (
	ErrSubmissionBlocked       = errors.New("booking: submission blocked by invalid fields")
	ErrSubmissionInProgress    = errors.New("booking: submission already in progress")
	ErrUnknownDestination      = errors.New("booking: unknown destination")
	ErrUnknownTrek             = errors.New("booking: unknown trek")
	ErrFormClosed              = errors.New("booking: form closed")
	ErrAcknowledgementPanicked = errors.New("booking: acknowledgement panicked")
	ErrInvalidTimezone         = errors.New("booking: invalid timezone")
	ErrInvalidCatalog          = errors.New("booking: invalid catalog")
	ErrSessionNotFound         = errors.New("booking: session not found")
)

// BlockedError is returned by Submit when at least one field is invalid.
type BlockedError struct {
	// Focus is the first invalid field in form order.
	Focus  string
	Errors validator.ValidationErrors
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: %d invalid, focus %s", ErrSubmissionBlocked, len(e.Errors), e.Focus)
}

func (e *BlockedError) Unwrap() []error {
	return []error{ErrSubmissionBlocked, e.Errors}
}

// IsBlocked reports whether err is a BlockedError and returns it.
func IsBlocked(err error) (*BlockedError, bool) {
	var be *BlockedError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
