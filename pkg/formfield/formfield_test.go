package formfield_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himtrails/tourbook/pkg/formfield"
	"github.com/himtrails/tourbook/pkg/validator"
)

func minTwo(field, value string, _ *formfield.FieldSet) validator.Rule {
	return validator.MinLenString(field, strings.TrimSpace(value), 2).
		WithMessage("too short", "test.too_short")
}

func lettersOnly(field, value string, _ *formfield.FieldSet) validator.Rule {
	return validator.ValidAlphaSpace(field, value).WithMessage("letters only", "test.letters")
}

func required(field, value string, _ *formfield.FieldSet) validator.Rule {
	return validator.RequiredString(field, value).WithMessage("required", "test.required")
}

func matchesOther(other string) formfield.Validator {
	return func(field, value string, fs *formfield.FieldSet) validator.Rule {
		return validator.Rule{
			Check: func() bool { return value == fs.Value(other) },
			Error: validator.ValidationError{Field: field, Message: "must match " + other, TranslationKey: "test.match"},
		}
	}
}

func newSet(t *testing.T) *formfield.FieldSet {
	t.Helper()
	fs, err := formfield.NewFieldSet(
		formfield.Field{Name: "name", Validators: []formfield.Validator{minTwo, lettersOnly}},
		formfield.Field{Name: "password", Validators: []formfield.Validator{required}},
		formfield.Field{Name: "confirm", Validators: []formfield.Validator{required, matchesOther("password")}},
		formfield.Field{Name: "notes"},
	)
	require.NoError(t, err)
	return fs
}

func TestNewFieldSet(t *testing.T) {
	t.Parallel()

	t.Run("keeps registration order", func(t *testing.T) {
		t.Parallel()
		fs := newSet(t)
		assert.Equal(t, []string{"name", "password", "confirm", "notes"}, fs.Names())
		assert.Equal(t, 4, fs.Len())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()
		_, err := formfield.NewFieldSet(formfield.Field{Name: ""})
		require.ErrorIs(t, err, formfield.ErrEmptyFieldName)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		t.Parallel()
		_, err := formfield.NewFieldSet(formfield.Field{Name: "a"}, formfield.Field{Name: "a"})
		require.ErrorIs(t, err, formfield.ErrDuplicateField)
		assert.Contains(t, err.Error(), "a")
	})

	t.Run("must panics on invalid definitions", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { formfield.MustFieldSet(formfield.Field{}) })
	})
}

func TestFieldSetValues(t *testing.T) {
	t.Parallel()

	fs := newSet(t)
	require.NoError(t, fs.Set("name", "Jane"))
	assert.Equal(t, "Jane", fs.Value("name"))
	assert.Equal(t, "", fs.Value("missing"))
	assert.True(t, fs.Has("notes"))
	assert.False(t, fs.Has("missing"))

	err := fs.Set("missing", "x")
	require.ErrorIs(t, err, formfield.ErrUnknownField)

	clone := fs.Clone()
	require.NoError(t, clone.Set("name", "John"))
	assert.Equal(t, "Jane", fs.Value("name"))
	assert.Equal(t, "John", clone.Value("name"))

	values := fs.Values()
	values["name"] = "mutated"
	assert.Equal(t, "Jane", fs.Value("name"))

	fs.Clear()
	assert.Equal(t, "", fs.Value("name"))
	assert.Equal(t, 4, fs.Len())
}

func TestValidateField(t *testing.T) {
	t.Parallel()

	t.Run("unknown field is valid", func(t *testing.T) {
		t.Parallel()
		fs := newSet(t)
		res := formfield.ValidateField("nonexistent", fs)
		assert.True(t, res.Valid)
		assert.Nil(t, res.Error)
		assert.Equal(t, "", res.Message())
	})

	t.Run("field without validators is valid", func(t *testing.T) {
		t.Parallel()
		fs := newSet(t)
		assert.True(t, formfield.ValidateField("notes", fs).Valid)
	})

	t.Run("first failing validator wins", func(t *testing.T) {
		t.Parallel()
		fs := newSet(t)
		// "1" fails both rules; only the first one is reported.
		require.NoError(t, fs.Set("name", "1"))
		res := formfield.ValidateField("name", fs)
		require.False(t, res.Valid)
		assert.Equal(t, "too short", res.Message())
		assert.Equal(t, "test.too_short", res.TranslationKey())
		assert.Equal(t, "name", res.Error.Field)
	})

	t.Run("later validator reported once earlier pass", func(t *testing.T) {
		t.Parallel()
		fs := newSet(t)
		require.NoError(t, fs.Set("name", "J4ne"))
		res := formfield.ValidateField("name", fs)
		require.False(t, res.Valid)
		assert.Equal(t, "letters only", res.Message())
	})

	t.Run("cross field validator reads the snapshot", func(t *testing.T) {
		t.Parallel()
		fs := newSet(t)
		require.NoError(t, fs.Set("password", "secret"))
		require.NoError(t, fs.Set("confirm", "other"))
		assert.False(t, formfield.ValidateField("confirm", fs).Valid)

		require.NoError(t, fs.Set("password", "other"))
		assert.True(t, formfield.ValidateField("confirm", fs).Valid)
	})

	t.Run("deterministic for the same snapshot", func(t *testing.T) {
		t.Parallel()
		fs := newSet(t)
		require.NoError(t, fs.Set("name", "x"))
		first := formfield.ValidateField("name", fs)
		second := formfield.ValidateField("name", fs)
		assert.Equal(t, first, second)
	})

	t.Run("nil set", func(t *testing.T) {
		t.Parallel()
		assert.True(t, formfield.ValidateField("name", nil).Valid)
		assert.Nil(t, formfield.ValidateAll(nil))
	})
}

func TestValidateAll(t *testing.T) {
	t.Parallel()

	t.Run("reports every field in order", func(t *testing.T) {
		t.Parallel()
		fs := newSet(t)
		require.NoError(t, fs.Set("name", "Jane Doe"))

		results := formfield.ValidateAll(fs)
		require.Len(t, results, 4)
		assert.False(t, results.OK())

		first, ok := results.FirstInvalid()
		require.True(t, ok)
		assert.Equal(t, "password", first.Field)

		name, ok := results.Get("name")
		require.True(t, ok)
		assert.True(t, name.Valid)

		_, ok = results.Get("missing")
		assert.False(t, ok)

		errs := validator.ExtractValidationErrors(results.Err())
		assert.Equal(t, []string{"password", "confirm"}, errs.Fields())
	})

	t.Run("ok is the conjunction of field results", func(t *testing.T) {
		t.Parallel()
		fs := newSet(t)
		require.NoError(t, fs.Set("name", "Jane Doe"))
		require.NoError(t, fs.Set("password", "pw"))
		require.NoError(t, fs.Set("confirm", "pw"))

		results := formfield.ValidateAll(fs)
		assert.True(t, results.OK())
		assert.NoError(t, results.Err())
		_, ok := results.FirstInvalid()
		assert.False(t, ok)

		for _, name := range fs.Names() {
			assert.Equal(t, formfield.ValidateField(name, fs), mustGet(t, results, name))
		}
	})
}

func TestStateOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, formfield.StateValid, formfield.StateOf(formfield.Result{Valid: true}))
	assert.Equal(t, formfield.StateInvalid, formfield.StateOf(formfield.Result{Valid: false}))
}

func mustGet(t *testing.T, rs formfield.Results, name string) formfield.Result {
	t.Helper()
	r, ok := rs.Get(name)
	require.True(t, ok)
	return r
}
