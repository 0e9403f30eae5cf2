// Package formfield implements declarative validation of a set of named form
// fields.
//
// A FieldSet holds every field of a form together with its current string
// value and an ordered list of Validators. ValidateField runs one field's
// validators in declaration order and stops at the first failure;
// ValidateAll does the same for every registered field and reports the
// aggregate.
//
// Validators receive the whole FieldSet, so cross-field rules such as
// "checkout after checkin" read sibling values explicitly instead of
// closing over outer state:
//
//	fields, err := formfield.NewFieldSet(
//	    formfield.Field{Name: "checkin", Validators: []formfield.Validator{required}},
//	    formfield.Field{Name: "checkout", Validators: []formfield.Validator{required, afterCheckin}},
//	)
//	res := formfield.ValidateField("checkout", fields)
//	if !res.Valid {
//	    fmt.Println(res.Message())
//	}
//
// FieldSet is a plain value holder and is not safe for concurrent use; owners
// that share it across goroutines must serialise access.
package formfield
