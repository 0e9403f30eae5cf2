package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himtrails/tourbook/pkg/validator"
)

func TestRequiredString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"non-empty", "kedarnath", true},
		{"surrounded by spaces", "  2  ", true},
		{"empty", "", false},
		{"only whitespace", " \t\n ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validator.Apply(validator.RequiredString("location", tt.value))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			verrs := validator.ExtractValidationErrors(err)
			require.Len(t, verrs, 1)
			assert.Equal(t, "validation.required", verrs[0].TranslationKey)
		})
	}
}

func TestMinLenString(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.MinLenString("name", "Jo", 2)))
	assert.Error(t, validator.Apply(validator.MinLenString("name", "J", 2)))
	// counts characters, not bytes
	assert.Error(t, validator.Apply(validator.MinLenString("name", "é", 2)))
	assert.NoError(t, validator.Apply(validator.MinLen("name", "éé", 2)))
}

func TestMaxLenString(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.MaxLenString("message", "hello", 5)))
	assert.Error(t, validator.Apply(validator.MaxLen("message", "hello!", 5)))
}
