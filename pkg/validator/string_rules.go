package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString fails for values that are empty once trimmed.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:             field,
			Message:           "field is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// MinLenString counts runes, so "Ā" has length one.
func MinLenString(field, value string, min int) Rule {
	return runeBound(field, value, "min", min, func(n int) bool { return n >= min },
		"must be at least %d characters long", "validation.min_length")
}

func MaxLenString(field, value string, max int) Rule {
	return runeBound(field, value, "max", max, func(n int) bool { return n <= max },
		"must be at most %d characters long", "validation.max_length")
}

func runeBound(field, value, param string, limit int, ok func(int) bool, format, key string) Rule {
	return Rule{
		Check: func() bool { return ok(utf8.RuneCountInString(value)) },
		Error: ValidationError{
			Field:             field,
			Message:           fmt.Sprintf(format, limit),
			TranslationKey:    key,
			TranslationValues: map[string]any{"field": field, param: limit},
		},
	}
}

func Required(field, value string) Rule { return RequiredString(field, value) }

func MinLen(field, value string, min int) Rule { return MinLenString(field, value, min) }

func MaxLen(field, value string, max int) Rule { return MaxLenString(field, value, max) }
