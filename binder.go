package formbind

import "fmt"

// Bind resolves every schema field against the submitted pairs and writes
// the results into target. Fields resolve in declaration order and binding
// stops at the first unsatisfiable field, so the reported error is
// deterministic for a given schema and input.
//
// Resolution per cardinality:
//   - Required: first value for the key, converted; absence is an error.
//   - Optional: first value when present, otherwise the target slot is
//     left untouched.
//   - RequiredMany: every value in encounter order; absence is an error.
//   - OptionalMany: every value in encounter order, possibly none.
//
// Keys in pairs that match no descriptor are ignored. Bind is a pure
// computation over its inputs; schemas are never mutated and may be shared
// across concurrent calls.
func Bind(target any, schema *Schema, pairs Pairs) error {
	grouped := pairs.group()
	for i := range schema.fields {
		if err := resolveField(target, &schema.fields[i], grouped[schema.fields[i].Name]); err != nil {
			return err
		}
	}
	return nil
}

// BindAll is the accumulating variant of Bind: instead of stopping at the
// first unsatisfiable field it records one failure per field and keeps
// going, returning the collected FieldErrors. This diverges from Bind's
// fail-fast contract and suits user-facing form validation where every
// problem should surface at once. Fields that fail are left unset; a Many
// field stops converting at its first bad value.
func BindAll(target any, schema *Schema, pairs Pairs) error {
	grouped := pairs.group()
	var errs FieldErrors
	for i := range schema.fields {
		if err := resolveField(target, &schema.fields[i], grouped[schema.fields[i].Name]); err != nil {
			if fe, ok := err.(*FieldError); ok {
				errs = append(errs, fe)
				continue
			}
			return err
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// resolveField applies one descriptor's cardinality rule to its value group.
func resolveField(target any, f *Field, values []string) error {
	switch f.Cardinality {
	case Required:
		if len(values) == 0 {
			return &FieldError{Field: f.Name, Err: ErrMissingField}
		}
		// Extra values for a scalar field are ignored, first one wins.
		return assign(target, f, values[0])

	case Optional:
		if len(values) == 0 {
			return nil
		}
		// Presence implies the value must be parseable.
		return assign(target, f, values[0])

	case RequiredMany:
		if len(values) == 0 {
			return &FieldError{Field: f.Name, Err: ErrMissingField}
		}
		return assignAll(target, f, values)

	case OptionalMany:
		return assignAll(target, f, values)

	default:
		// Unreachable for schemas built through NewSchema, which rejects
		// unknown cardinalities at construction.
		return fmt.Errorf("%w: field %q has unknown cardinality %v", ErrInvalidSchema, f.Name, f.Cardinality)
	}
}

// assign converts one raw value and writes it through the field's setter.
func assign(target any, f *Field, raw string) error {
	value, err := convertValue(f.Convert, raw)
	if err != nil {
		return &FieldError{Field: f.Name, Value: raw, Err: ErrInvalidValue, Reason: err}
	}
	if err := f.Set(target, value); err != nil {
		return err
	}
	return nil
}

// assignAll converts and writes every value in encounter order, aborting at
// the first conversion failure.
func assignAll(target any, f *Field, values []string) error {
	for _, raw := range values {
		if err := assign(target, f, raw); err != nil {
			return err
		}
	}
	return nil
}

// convertValue applies the field's converter, defaulting to the identity
// string conversion which cannot fail.
func convertValue(convert Converter, raw string) (any, error) {
	if convert == nil {
		return raw, nil
	}
	return convert(raw)
}
