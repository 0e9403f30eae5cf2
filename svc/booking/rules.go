package booking

import (
	"strings"
	"time"

	"github.com/himtrails/tourbook/pkg/formfield"
	"github.com/himtrails/tourbook/pkg/validator"
)

// Field names in form order.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLocation = "location"
	FieldCheckin  = "checkin"
	FieldCheckout = "checkout"
	FieldPeople   = "people"
	FieldMessage  = "message"
)

// Translation keys of the rule messages.
const (
	KeyNameTooShort          = "booking.errors.name_too_short"
	KeyNameInvalid           = "booking.errors.name_invalid"
	KeyEmailInvalid          = "booking.errors.email_invalid"
	KeyPhoneInvalid          = "booking.errors.phone_invalid"
	KeyLocationRequired      = "booking.errors.location_required"
	KeyCheckinRequired       = "booking.errors.checkin_required"
	KeyCheckinPast           = "booking.errors.checkin_past"
	KeyCheckoutRequired      = "booking.errors.checkout_required"
	KeyCheckoutBeforeCheckin = "booking.errors.checkout_before_checkin"
	KeyPeopleRequired        = "booking.errors.people_required"
)

func nameLength(field, value string, _ *formfield.FieldSet) validator.Rule {
	return validator.MinLenString(field, strings.TrimSpace(value), 2).
		WithMessage("Name must be at least 2 characters long", KeyNameTooShort)
}

func nameLetters(field, value string, _ *formfield.FieldSet) validator.Rule {
	return validator.ValidAlphaSpace(field, value).
		WithMessage("Name should only contain letters and spaces", KeyNameInvalid)
}

func emailShape(field, value string, _ *formfield.FieldSet) validator.Rule {
	return validator.ValidEmail(field, value).
		WithMessage("Please enter a valid email address", KeyEmailInvalid)
}

func phoneDigits(field, value string, _ *formfield.FieldSet) validator.Rule {
	return validator.ValidPhone(field, value).
		WithMessage("Please enter a valid 10-digit phone number", KeyPhoneInvalid)
}

// required builds a non-blank rule with its own message.
func required(message, key string) formfield.Validator {
	return func(field, value string, _ *formfield.FieldSet) validator.Rule {
		return validator.RequiredString(field, value).WithMessage(message, key)
	}
}

// checkinNotPast fails for dates before midnight of today in loc. now is
// read on every evaluation so a long-lived form follows the calendar.
func checkinNotPast(now func() time.Time, loc *time.Location) formfield.Validator {
	return func(field, value string, _ *formfield.FieldSet) validator.Rule {
		const msg = "Check-in date must be today or in the future"
		d, err := validator.ParseDate(value, loc)
		if err != nil {
			return validator.Never(validator.ValidationError{Field: field}).WithMessage(msg, KeyCheckinPast)
		}
		today := validator.StartOfDay(now().In(loc))
		return validator.DateOnOrAfter(field, d, today).WithMessage(msg, KeyCheckinPast)
	}
}

// checkoutAfterCheckin reads the sibling checkin value. An unparseable value
// on either side fails.
func checkoutAfterCheckin(loc *time.Location) formfield.Validator {
	return func(field, value string, fs *formfield.FieldSet) validator.Rule {
		const msg = "Check-out date must be after check-in date"
		out, err := validator.ParseDate(value, loc)
		if err != nil {
			return validator.Never(validator.ValidationError{Field: field}).WithMessage(msg, KeyCheckoutBeforeCheckin)
		}
		in, err := validator.ParseDate(fs.Value(FieldCheckin), loc)
		if err != nil {
			return validator.Never(validator.ValidationError{Field: field}).WithMessage(msg, KeyCheckoutBeforeCheckin)
		}
		return validator.DateAfter(field, out, in).WithMessage(msg, KeyCheckoutBeforeCheckin)
	}
}

// NewFieldSet returns the booking fields with their validators, empty.
func NewFieldSet(now func() time.Time, loc *time.Location) *formfield.FieldSet {
	return formfield.MustFieldSet(
		formfield.Field{Name: FieldName, Validators: []formfield.Validator{nameLength, nameLetters}},
		formfield.Field{Name: FieldEmail, Validators: []formfield.Validator{emailShape}},
		formfield.Field{Name: FieldPhone, Validators: []formfield.Validator{phoneDigits}},
		formfield.Field{Name: FieldLocation, Validators: []formfield.Validator{
			required("Please select a destination", KeyLocationRequired),
		}},
		formfield.Field{Name: FieldCheckin, Validators: []formfield.Validator{
			required("Please select a check-in date", KeyCheckinRequired),
			checkinNotPast(now, loc),
		}},
		formfield.Field{Name: FieldCheckout, Validators: []formfield.Validator{
			required("Please select a check-out date", KeyCheckoutRequired),
			checkoutAfterCheckin(loc),
		}},
		formfield.Field{Name: FieldPeople, Validators: []formfield.Validator{
			required("Please select number of people", KeyPeopleRequired),
		}},
		formfield.Field{Name: FieldMessage},
	)
}
