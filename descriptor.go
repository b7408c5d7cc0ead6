package formbind

import "fmt"

// Cardinality describes how many values a field expects from the form.
type Cardinality int

const (
	// Required expects exactly one value; binding fails when the key is absent.
	// Extra values for the same key are ignored, the first one wins.
	Required Cardinality = iota

	// Optional expects zero or one value; absence leaves the target slot untouched.
	Optional

	// RequiredMany expects one or more values; binding fails when the key is absent.
	RequiredMany

	// OptionalMany expects zero or more values; absence resolves to an empty
	// sequence. An unchecked checkbox group sends no pairs at all, so "never
	// provided" and "provided with zero selections" are indistinguishable.
	OptionalMany
)

// String returns the cardinality name for error messages and logs.
func (c Cardinality) String() string {
	switch c {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case RequiredMany:
		return "required-many"
	case OptionalMany:
		return "optional-many"
	default:
		return fmt.Sprintf("cardinality(%d)", int(c))
	}
}

// Field describes one bindable field of a target record: the form key it
// matches, how many values it accepts, how raw strings become typed values,
// and how resolved values are written into the target.
type Field struct {
	// Name is the form key this field matches.
	Name string

	// Cardinality controls presence requirements and value count.
	Cardinality Cardinality

	// Convert turns one raw string into the field's typed value. A nil
	// Convert is the identity string conversion, which never fails.
	Convert Converter

	// Set writes one converted value into the target record. For Many
	// cardinalities it is invoked once per value in encounter order and
	// is expected to append.
	Set func(target, value any) error
}

// Schema is an ordered, immutable list of field descriptors. Schemas are
// read-only after construction and safe to share across concurrent binds.
type Schema struct {
	fields []Field
}

// NewSchema validates the descriptors and assembles a schema. Duplicate
// field names are a programming error in the schema provider, not a data
// error, so they are rejected here and never surface during a bind.
func NewSchema(fields ...Field) (*Schema, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field with empty name", ErrInvalidSchema)
		}
		if f.Set == nil {
			return nil, fmt.Errorf("%w: field %q has no setter", ErrInvalidSchema, f.Name)
		}
		if f.Cardinality < Required || f.Cardinality > OptionalMany {
			return nil, fmt.Errorf("%w: field %q has unknown cardinality %v", ErrInvalidSchema, f.Name, f.Cardinality)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return &Schema{fields: append([]Field(nil), fields...)}, nil
}

// MustSchema is NewSchema that panics on error. Schema construction failures
// indicate misconfiguration, so failing loudly at registration time is the
// intended use for statically declared schemas.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns a copy of the descriptor list in declaration order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Len reports the number of field descriptors.
func (s *Schema) Len() int {
	return len(s.fields)
}
