package validator

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format of HTML date inputs.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value at midnight in loc. A nil loc means UTC.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidDate, err)
	}
	return t, nil
}

// StartOfDay zeroes the time-of-day part of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateOnOrAfter validates value >= min.
func DateOnOrAfter(field string, value, min time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !value.Before(min)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "date must be on or after " + min.Format(DateLayout),
			TranslationKey: "validation.date_on_or_after",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min.Format(DateLayout),
			},
		},
	}
}

// DateAfter validates value > after.
func DateAfter(field string, value, after time.Time) Rule {
	return Rule{
		Check: func() bool {
			return value.After(after)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "date must be after " + after.Format(DateLayout),
			TranslationKey: "validation.date_after",
			TranslationValues: map[string]any{
				"field": field,
				"after": after.Format(DateLayout),
			},
		},
	}
}
