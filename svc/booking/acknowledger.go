package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/himtrails/tourbook/pkg/sanitizer"
)

// Enquiry is the snapshot of a valid form taken at submit time.
type Enquiry struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
	People   string `json:"people"`
	Message  string `json:"message,omitempty"`
}

var (
	cleanLine = sanitizer.Compose(sanitizer.StripHTML, sanitizer.SingleLine, sanitizer.CollapseSpace)
	cleanText = sanitizer.Compose(sanitizer.StripHTML, sanitizer.Trim, sanitizer.MaxRunes(2000))
)

// enquiryFrom copies the form values into an Enquiry, dropping markup and
// stray whitespace.
func enquiryFrom(values map[string]string) Enquiry {
	return Enquiry{
		Name:     cleanLine(values[FieldName]),
		Email:    sanitizer.Apply(values[FieldEmail], sanitizer.Trim, sanitizer.ToLower),
		Phone:    sanitizer.Trim(values[FieldPhone]),
		Location: values[FieldLocation],
		Checkin:  values[FieldCheckin],
		Checkout: values[FieldCheckout],
		People:   values[FieldPeople],
		Message:  cleanText(values[FieldMessage]),
	}
}

// Confirmation is the outcome of an acknowledged enquiry.
type Confirmation struct {
	Reference      string    `json:"reference"`
	Enquiry        Enquiry   `json:"enquiry"`
	Message        string    `json:"message"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
}

// Acknowledger accepts an enquiry.
type Acknowledger interface {
	Acknowledge(ctx context.Context, e Enquiry) (Confirmation, error)
}

// AcknowledgerFunc adapts a function to Acknowledger.
type AcknowledgerFunc func(ctx context.Context, e Enquiry) (Confirmation, error)

func (f AcknowledgerFunc) Acknowledge(ctx context.Context, e Enquiry) (Confirmation, error) {
	return f(ctx, e)
}

// SimulatedAcknowledger waits Delay and confirms every enquiry locally.
type SimulatedAcknowledger struct {
	Delay time.Duration
	Now   func() time.Time
}

func (s SimulatedAcknowledger) Acknowledge(ctx context.Context, e Enquiry) (Confirmation, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Confirmation{}, ctx.Err()
		case <-t.C:
		}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ref, err := uuid.NewV7()
	if err != nil {
		return Confirmation{}, err
	}
	return Confirmation{Reference: ref.String(), Enquiry: e, AcknowledgedAt: now()}, nil
}
