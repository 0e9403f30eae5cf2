package formfield

// ValidateField evaluates the validators of one field in declaration order
// against its current value and the whole set, stopping at the first
// failure. An unknown name is treated as valid.
func ValidateField(name string, fields *FieldSet) Result {
	if fields == nil {
		return Result{Field: name, Valid: true}
	}
	f, ok := fields.field(name)
	if !ok {
		return Result{Field: name, Valid: true}
	}

	for _, v := range f.Validators {
		if v == nil {
			continue
		}
		rule := v(name, f.Value, fields)
		if !rule.Passes() {
			err := rule.Error
			if err.Field == "" {
				err.Field = name
			}
			return Result{Field: name, Valid: false, Error: &err}
		}
	}

	return Result{Field: name, Valid: true}
}

// ValidateAll validates every registered field in registration order.
func ValidateAll(fields *FieldSet) Results {
	if fields == nil {
		return nil
	}
	out := make(Results, 0, fields.Len())
	for _, name := range fields.order {
		out = append(out, ValidateField(name, fields))
	}
	return out
}
