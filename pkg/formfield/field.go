package formfield

import (
	"fmt"
	"slices"

	"github.com/himtrails/tourbook/pkg/validator"
)

// Validator builds the rule for a single check of a field. value is the raw
// current value of the field and fields is the snapshot it belongs to.
type Validator func(field, value string, fields *FieldSet) validator.Rule

// Field is one named form field.
type Field struct {
	Name       string
	Value      string
	Validators []Validator
}

// FieldSet maps field names to fields. Registration order is kept so callers
// can find the first invalid field in form order.
type FieldSet struct {
	order  []string
	fields map[string]*Field
}

// NewFieldSet registers fields in the given order.
func NewFieldSet(fields ...Field) (*FieldSet, error) {
	fs := &FieldSet{
		order:  make([]string, 0, len(fields)),
		fields: make(map[string]*Field, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, ErrEmptyFieldName
		}
		if _, ok := fs.fields[f.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
		}
		f.Validators = slices.Clone(f.Validators)
		fs.fields[f.Name] = &f
		fs.order = append(fs.order, f.Name)
	}
	return fs, nil
}

// MustFieldSet is like NewFieldSet but panics on invalid definitions.
func MustFieldSet(fields ...Field) *FieldSet {
	fs, err := NewFieldSet(fields...)
	if err != nil {
		panic(err)
	}
	return fs
}

func (fs *FieldSet) Has(name string) bool {
	_, ok := fs.fields[name]
	return ok
}

// Value returns the current value of a field, or "" for unknown names.
func (fs *FieldSet) Value(name string) string {
	if f, ok := fs.fields[name]; ok {
		return f.Value
	}
	return ""
}

// Set updates the value of a registered field.
func (fs *FieldSet) Set(name, value string) error {
	f, ok := fs.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.Value = value
	return nil
}

// Names returns field names in registration order.
func (fs *FieldSet) Names() []string {
	return slices.Clone(fs.order)
}

func (fs *FieldSet) Len() int {
	return len(fs.order)
}

// Values returns a copy of all current values keyed by field name.
func (fs *FieldSet) Values() map[string]string {
	out := make(map[string]string, len(fs.fields))
	for name, f := range fs.fields {
		out[name] = f.Value
	}
	return out
}

// Clear empties every value, keeping the registered validators.
func (fs *FieldSet) Clear() {
	for _, f := range fs.fields {
		f.Value = ""
	}
}

// Clone returns an independent copy. Validators are shared; they are
// expected to be pure.
func (fs *FieldSet) Clone() *FieldSet {
	out := &FieldSet{
		order:  slices.Clone(fs.order),
		fields: make(map[string]*Field, len(fs.fields)),
	}
	for name, f := range fs.fields {
		cp := *f
		out.fields[name] = &cp
	}
	return out
}

func (fs *FieldSet) field(name string) (*Field, bool) {
	f, ok := fs.fields[name]
	return f, ok
}
