package formfield

import "errors"

var (
	ErrEmptyFieldName = errors.New("formfield: field name is empty")
	ErrDuplicateField = errors.New("formfield: duplicate field name")
	ErrUnknownField   = errors.New("formfield: unknown field")
)
