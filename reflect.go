package formbind

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// SchemaFor derives a schema from a struct type using `form` tags, one
// descriptor per tagged field in declaration order. The prototype may be a
// struct value or a pointer to one; only its type is consulted.
//
// Field shape determines cardinality:
//   - value field: Required (exactly one value expected)
//   - pointer field: Optional (left nil when absent)
//   - slice field: OptionalMany, or RequiredMany with the "required" option
//
// Supported struct tags:
//   - `form:"name"`          - binds to form key "name"
//   - `form:"-"`             - skips the field
//   - `form:"name,required"` - slice must receive at least one value
//   - `form:"name,optional"` - value field tolerates absence (zero value)
//   - `form:"name,sanitize"` - strip control characters from string input
//   - `form:"name,layout:2006-01-02"` - time.Time parse layout
//
// Untagged exported fields bind to the lowercase field name. Supported
// element types: strings, ints, uints, floats, bools (including named
// variants), time.Time, uuid.UUID, language.Tag, and any type implementing
// encoding.TextUnmarshaler.
func SchemaFor(prototype any) (*Schema, error) {
	rt := reflect.TypeOf(prototype)
	if rt == nil {
		return nil, fmt.Errorf("%w: nil prototype", ErrInvalidSchema)
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: prototype must be a struct, got %s", ErrInvalidSchema, rt.Kind())
	}

	var fields []Field
	for i := range rt.NumField() {
		sf := rt.Field(i)

		// Skip unexported and embedded fields; nested records are not modeled.
		if !sf.IsExported() || sf.Anonymous {
			continue
		}

		name, opts, skip := parseFormTag(sf)
		if skip {
			continue
		}

		field, err := descriptorFor(rt, i, name, opts)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	return NewSchema(fields...)
}

// MustSchemaFor is SchemaFor that panics on error, for statically declared
// record types where a schema failure is a programming mistake.
func MustSchemaFor(prototype any) *Schema {
	s, err := SchemaFor(prototype)
	if err != nil {
		panic(err)
	}
	return s
}

// BindStruct derives a schema from target's type and binds the pairs into
// it in one call. The schema is rebuilt on every call; callers binding the
// same type repeatedly should hold onto SchemaFor's result instead.
func BindStruct(target any, pairs Pairs) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrInvalidTarget)
	}
	schema, err := SchemaFor(target)
	if err != nil {
		return err
	}
	return Bind(target, schema, pairs)
}

// formTagOptions carries the parsed comma-separated tag options.
type formTagOptions struct {
	required bool
	optional bool
	sanitize bool
	layout   string
}

// parseFormTag extracts the form key and options from a struct field tag.
// A missing tag defaults to the lowercase field name; "-" skips the field.
func parseFormTag(sf reflect.StructField) (name string, opts formTagOptions, skip bool) {
	tag := sf.Tag.Get("form")
	if tag == "" {
		return strings.ToLower(sf.Name), formTagOptions{}, false
	}
	if tag == "-" {
		return "", formTagOptions{}, true
	}

	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = strings.ToLower(sf.Name)
	}
	for _, opt := range parts[1:] {
		switch {
		case opt == "required":
			opts.required = true
		case opt == "optional":
			opts.optional = true
		case opt == "sanitize":
			opts.sanitize = true
		case strings.HasPrefix(opt, "layout:"):
			opts.layout = strings.TrimPrefix(opt, "layout:")
		}
	}
	return name, opts, false
}

// descriptorFor builds the descriptor for one struct field.
func descriptorFor(structType reflect.Type, index int, name string, opts formTagOptions) (Field, error) {
	ft := structType.Field(index).Type

	switch ft.Kind() {
	case reflect.Slice:
		convert, err := converterFor(ft.Elem(), opts)
		if err != nil {
			return Field{}, fmt.Errorf("%w: field %q: %v", ErrInvalidSchema, name, err)
		}
		cardinality := OptionalMany
		if opts.required {
			cardinality = RequiredMany
		}
		return Field{
			Name:        name,
			Cardinality: cardinality,
			Convert:     convert,
			Set:         sliceSetter(structType, index),
		}, nil

	case reflect.Pointer:
		if opts.required {
			return Field{}, fmt.Errorf("%w: field %q: pointer fields are optional, drop the required option or use a value field", ErrInvalidSchema, name)
		}
		convert, err := converterFor(ft.Elem(), opts)
		if err != nil {
			return Field{}, fmt.Errorf("%w: field %q: %v", ErrInvalidSchema, name, err)
		}
		return Field{
			Name:        name,
			Cardinality: Optional,
			Convert:     convert,
			Set:         pointerSetter(structType, index),
		}, nil

	default:
		convert, err := converterFor(ft, opts)
		if err != nil {
			return Field{}, fmt.Errorf("%w: field %q: %v", ErrInvalidSchema, name, err)
		}
		cardinality := Required
		if opts.optional {
			cardinality = Optional
		}
		return Field{
			Name:        name,
			Cardinality: cardinality,
			Convert:     convert,
			Set:         valueSetter(structType, index),
		}, nil
	}
}

var (
	timeType            = reflect.TypeOf(time.Time{})
	uuidType            = reflect.TypeOf(uuid.UUID{})
	languageTagType     = reflect.TypeOf(language.Tag{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// converterFor selects the conversion for one element type. Returned values
// are always of the exact element type so setters can assign them directly.
func converterFor(t reflect.Type, opts formTagOptions) (Converter, error) {
	switch t {
	case timeType:
		layout := opts.layout
		if layout == "" {
			layout = time.RFC3339
		}
		return Time(layout), nil
	case uuidType:
		return UUID, nil
	case languageTagType:
		return Language, nil
	}

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return textConverter(t), nil
	}

	switch t.Kind() {
	case reflect.String:
		return func(raw string) (any, error) {
			if opts.sanitize {
				raw = sanitizeString(raw)
			}
			rv := reflect.New(t).Elem()
			rv.SetString(raw)
			return rv.Interface(), nil
		}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := t.Bits()
		return func(raw string) (any, error) {
			n, err := strconv.ParseInt(raw, 10, bits)
			if err != nil {
				return nil, err
			}
			rv := reflect.New(t).Elem()
			rv.SetInt(n)
			return rv.Interface(), nil
		}, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		bits := t.Bits()
		return func(raw string) (any, error) {
			n, err := strconv.ParseUint(raw, 10, bits)
			if err != nil {
				return nil, err
			}
			rv := reflect.New(t).Elem()
			rv.SetUint(n)
			return rv.Interface(), nil
		}, nil

	case reflect.Float32, reflect.Float64:
		bits := t.Bits()
		return func(raw string) (any, error) {
			n, err := strconv.ParseFloat(raw, bits)
			if err != nil {
				return nil, err
			}
			rv := reflect.New(t).Elem()
			rv.SetFloat(n)
			return rv.Interface(), nil
		}, nil

	case reflect.Bool:
		return func(raw string) (any, error) {
			v, err := Bool(raw)
			if err != nil {
				return nil, err
			}
			rv := reflect.New(t).Elem()
			rv.SetBool(v.(bool))
			return rv.Interface(), nil
		}, nil

	default:
		return nil, fmt.Errorf("unsupported type %s", t)
	}
}

// textConverter parses through the type's encoding.TextUnmarshaler.
func textConverter(t reflect.Type) Converter {
	return func(raw string) (any, error) {
		p := reflect.New(t)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return nil, err
		}
		return p.Elem().Interface(), nil
	}
}

// targetField resolves the addressable struct field on the bind target.
func targetField(structType reflect.Type, index int, target any) (reflect.Value, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrInvalidTarget)
	}
	rv = rv.Elem()
	if rv.Type() != structType {
		return reflect.Value{}, fmt.Errorf("%w: target is %s, schema was built for %s", ErrInvalidTarget, rv.Type(), structType)
	}
	return rv.Field(index), nil
}

func valueSetter(structType reflect.Type, index int) func(target, value any) error {
	return func(target, value any) error {
		fv, err := targetField(structType, index, target)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(value))
		return nil
	}
}

func pointerSetter(structType reflect.Type, index int) func(target, value any) error {
	return func(target, value any) error {
		fv, err := targetField(structType, index, target)
		if err != nil {
			return err
		}
		p := reflect.New(fv.Type().Elem())
		p.Elem().Set(reflect.ValueOf(value))
		fv.Set(p)
		return nil
	}
}

func sliceSetter(structType reflect.Type, index int) func(target, value any) error {
	return func(target, value any) error {
		fv, err := targetField(structType, index, target)
		if err != nil {
			return err
		}
		fv.Set(reflect.Append(fv, reflect.ValueOf(value)))
		return nil
	}
}
