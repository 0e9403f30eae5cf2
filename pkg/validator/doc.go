// Package validator provides small, declarative validation rules for the
// string values that arrive from HTML forms.
//
// Every exported constructor returns a Rule: a boolean Check paired with a
// ValidationError that carries a default English message, a translation key
// and translation values. Rules hold no state, so they are cheap to build on
// every keystroke and safe to use from any goroutine.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("email", email),
//	    validator.ValidEmail("email", email),
//	    validator.ValidPhone("phone", phone),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // iterate over field-level messages or translate them
//	}
//
// Apply collects every failure. formfield.ValidateField stops at the first
// failing rule, which is what per-field validation wants.
//
// # Custom messages
//
// Domain code usually wants its own wording:
//
//	validator.MinLen("name", name, 2).
//	    WithMessage("Name must be at least 2 characters long", "booking.errors.name_too_short")
//
// # Dates
//
// Date rules operate on time.Time. ParseDate reads the YYYY-MM-DD format that
// HTML date inputs submit, and StartOfDay zeroes the clock so "today" compares
// equal to a date picked today.
package validator
