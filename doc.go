// Package formbind binds the decoded, ordered key/value pairs of an
// application/x-www-form-urlencoded submission into strongly-typed records.
// It gives backend services a typed, validated view of HTML form data
// (checkboxes, multi-selects, optional fields, numeric inputs) instead of
// manual scanning of raw pairs.
//
// # Model
//
// A bind takes two inputs: an ordered Pairs sequence produced by the caller
// (already percent-decoded; the package performs no URL decoding and no HTTP
// parsing) and a Schema describing the target record. The schema is an
// ordered list of field descriptors, each naming the expected key, its
// Cardinality, a Converter from raw string to typed value, and a setter that
// writes resolved values into the target.
//
// Binding groups pairs by key, preserving per-key value order, then resolves
// descriptors in declaration order. The first unsatisfiable descriptor aborts
// the bind with a descriptive error; BindAll is the accumulating variant that
// collects every field failure instead.
//
// # Cardinalities
//
//   - Required: exactly one value; absence fails, extras are ignored
//   - Optional: zero or one value; absence leaves the slot untouched
//   - RequiredMany: one or more values in encounter order; absence fails
//   - OptionalMany: zero or more values; absence yields an empty sequence
//
// Unknown keys in the input are ignored, never an error: forms routinely
// carry unrelated fields such as CSRF tokens.
//
// # Schema providers
//
// Schemas can come from any provider. The package ships three:
//
// Manual registration with typed setters:
//
//	schema := formbind.MustSchema(
//		formbind.Field{Name: "name", Cardinality: formbind.Required,
//			Set: func(t, v any) error { t.(*Signup).Name = v.(string); return nil }},
//		formbind.Field{Name: "age", Cardinality: formbind.Required, Convert: formbind.Int,
//			Set: func(t, v any) error { t.(*Signup).Age = v.(int); return nil }},
//	)
//
// Reflection over `form` struct tags (value = required, pointer = optional,
// slice = many):
//
//	type Signup struct {
//		Name      string   `form:"name"`
//		Email     *string  `form:"email"`
//		Interests []string `form:"interests"`
//	}
//
//	var req Signup
//	if err := formbind.BindStruct(&req, pairs); err != nil {
//		// err identifies the first unsatisfiable field
//	}
//
// OpenAPI documents via the openapi subpackage, and generated code via the
// formbindgen tool, which emits reflection-free schemas for tagged structs.
//
// # Errors
//
// Failures unwrap to the sentinels ErrMissingField, ErrInvalidValue,
// ErrDuplicateField, ErrInvalidSchema and ErrInvalidTarget, and carry the
// field name, the exact offending raw value, and the underlying parser's
// reason via FieldError. Malformed input is an expected condition: Bind
// returns errors, it never panics. Schema construction errors, by contrast,
// signal provider misconfiguration and MustSchema fails loudly at
// registration time.
//
// # Concurrency
//
// A bind is a pure, synchronous computation over its inputs. Schemas are
// immutable after construction and safe to share across concurrent binds
// without coordination.
package formbind
