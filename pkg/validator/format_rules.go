package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// space matches ASCII whitespace, Unicode space separators (U+00A0 and
// friends) and the line and paragraph separators.
const space = `\s\p{Zs}\x{2028}\x{2029}`

var (
	// Deliberately loose: something@something.tld with no whitespace.
	emailShapeRegex = regexp.MustCompile(`^[^@` + space + `]+@[^@` + space + `]+\.[^@` + space + `]+$`)

	alphaSpaceRegex = regexp.MustCompile(`^[a-zA-Z` + space + `]+$`)
)

// ValidEmail validates the simple local@domain.tld shape of an email address.
// Surrounding whitespace is ignored.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailShapeRegex.MatchString(strings.TrimSpace(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// DigitCount validates that value contains exactly n digits once every
// non-digit character is stripped.
func DigitCount(field, value string, n int) Rule {
	return Rule{
		Check: func() bool {
			return CountDigits(value) == n
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must contain exactly %d digits", n),
			TranslationKey: "validation.digit_count",
			TranslationValues: map[string]any{
				"field":  field,
				"digits": n,
			},
		},
	}
}

// ValidPhone validates a 10-digit phone number. Separators such as spaces,
// dashes, dots and parentheses are ignored.
func ValidPhone(field, value string) Rule {
	rule := DigitCount(field, value, 10)
	rule.Error.Message = "must be a valid 10-digit phone number"
	rule.Error.TranslationKey = "validation.phone"
	return rule
}

// ValidAlphaSpace validates that the trimmed value contains only ASCII letters
// and whitespace.
func ValidAlphaSpace(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return alphaSpaceRegex.MatchString(strings.TrimSpace(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must contain only letters and spaces",
			TranslationKey: "validation.alpha_space",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// CountDigits returns the number of ASCII digits in s.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
