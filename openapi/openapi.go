// Package openapi derives formbind schemas from OpenAPI 3 documents.
//
// A Provider wraps a loaded document; OperationSchema produces the schema
// for an operation's application/x-www-form-urlencoded request body, and
// BindOperation binds submitted pairs straight into a map[string]any record.
// Object properties map to descriptors: a property in the schema's required
// list is Required (RequiredMany for arrays), arrays without it are
// OptionalMany, everything else is Optional. Property types drive conversion:
// integer, number and boolean parse accordingly; string honors the uuid,
// date and date-time formats and enum constraints. Nested objects are not
// modeled, matching the flat key space of form submissions.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dmitrymomot/formbind"
)

// Error variables define schema derivation failures.
var (
	// ErrInvalidDocument indicates the OpenAPI document could not be loaded
	// or failed validation.
	ErrInvalidDocument = errors.New("invalid openapi document")

	// ErrOperationNotFound indicates no operation carries the requested id.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrNoFormBody indicates the operation has no
	// application/x-www-form-urlencoded request body to derive fields from.
	ErrNoFormBody = errors.New("operation has no urlencoded form body")

	// ErrUnsupportedProperty indicates a property type that has no form
	// representation (nested objects, untyped schemas).
	ErrUnsupportedProperty = errors.New("unsupported property type")
)

const formMediaType = "application/x-www-form-urlencoded"

// Provider derives formbind schemas from one loaded OpenAPI 3 document.
// A Provider is read-only after Load and safe for concurrent use.
type Provider struct {
	doc *openapi3.T
}

// Load parses and validates an OpenAPI 3 document from raw JSON or YAML.
func Load(ctx context.Context, data []byte) (*Provider, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &Provider{doc: doc}, nil
}

// LoadFile is Load for a document on disk.
func LoadFile(ctx context.Context, path string) (*Provider, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &Provider{doc: doc}, nil
}

// OperationSchema builds the formbind schema for the operation's urlencoded
// request body. Properties resolve in sorted name order since OpenAPI object
// properties carry no declaration order; this keeps error reporting
// deterministic. Bound targets are map[string]any records.
func (p *Provider) OperationSchema(operationID string) (*formbind.Schema, error) {
	body, err := p.formBody(operationID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]formbind.Field, 0, len(names))
	for _, name := range names {
		property := body.Properties[name].Value
		field, err := propertyField(name, property, slices.Contains(body.Required, name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	return formbind.NewSchema(fields...)
}

// BindOperation derives the operation's schema and binds the pairs into a
// fresh map record. Array properties are pre-seeded with empty slices so an
// unchecked checkbox group still yields an empty sequence rather than a
// missing key.
func (p *Provider) BindOperation(operationID string, pairs formbind.Pairs) (map[string]any, error) {
	body, err := p.formBody(operationID)
	if err != nil {
		return nil, err
	}
	schema, err := p.OperationSchema(operationID)
	if err != nil {
		return nil, err
	}

	record := make(map[string]any, len(body.Properties))
	for name, property := range body.Properties {
		if property.Value != nil && property.Value.Type.Is(openapi3.TypeArray) {
			record[name] = []any{}
		}
	}

	if err := formbind.Bind(record, schema, pairs); err != nil {
		return nil, err
	}
	return record, nil
}

// formBody locates the urlencoded request body schema for an operation.
func (p *Provider) formBody(operationID string) (*openapi3.Schema, error) {
	operation := p.findOperation(operationID)
	if operation == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoFormBody, operationID)
	}
	media := operation.RequestBody.Value.Content.Get(formMediaType)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoFormBody, operationID)
	}
	return media.Schema.Value, nil
}

func (p *Provider) findOperation(operationID string) *openapi3.Operation {
	if p.doc.Paths == nil {
		return nil
	}
	for _, item := range p.doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

// propertyField maps one object property to a field descriptor.
func propertyField(name string, property *openapi3.Schema, required bool) (formbind.Field, error) {
	if property == nil {
		return formbind.Field{}, fmt.Errorf("%w: %q has no schema", ErrUnsupportedProperty, name)
	}

	if property.Type.Is(openapi3.TypeArray) {
		if property.Items == nil || property.Items.Value == nil {
			return formbind.Field{}, fmt.Errorf("%w: array %q has no items schema", ErrUnsupportedProperty, name)
		}
		convert, err := propertyConverter(name, property.Items.Value)
		if err != nil {
			return formbind.Field{}, err
		}
		cardinality := formbind.OptionalMany
		if required {
			cardinality = formbind.RequiredMany
		}
		return formbind.Field{
			Name:        name,
			Cardinality: cardinality,
			Convert:     convert,
			Set:         appendSetter(name),
		}, nil
	}

	convert, err := propertyConverter(name, property)
	if err != nil {
		return formbind.Field{}, err
	}
	cardinality := formbind.Optional
	if required {
		cardinality = formbind.Required
	}
	return formbind.Field{
		Name:        name,
		Cardinality: cardinality,
		Convert:     convert,
		Set:         scalarSetter(name),
	}, nil
}

// propertyConverter selects value conversion from the property type and format.
func propertyConverter(name string, property *openapi3.Schema) (formbind.Converter, error) {
	switch {
	case property.Type.Is(openapi3.TypeString):
		switch property.Format {
		case "uuid":
			return formbind.UUID, nil
		case "date-time":
			return formbind.Time(time.RFC3339), nil
		case "date":
			return formbind.Time("2006-01-02"), nil
		}
		if len(property.Enum) > 0 {
			allowed := make([]string, 0, len(property.Enum))
			for _, v := range property.Enum {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %q has a non-string enum value", ErrUnsupportedProperty, name)
				}
				allowed = append(allowed, s)
			}
			return formbind.Enum(allowed...), nil
		}
		return nil, nil

	case property.Type.Is(openapi3.TypeInteger):
		return formbind.Int64, nil

	case property.Type.Is(openapi3.TypeNumber):
		return formbind.Float64, nil

	case property.Type.Is(openapi3.TypeBoolean):
		return formbind.Bool, nil

	default:
		return nil, fmt.Errorf("%w: %q is %s", ErrUnsupportedProperty, name, typeName(property.Type))
	}
}

func typeName(types *openapi3.Types) string {
	if types == nil {
		return "untyped"
	}
	values := types.Slice()
	if len(values) == 0 {
		return "untyped"
	}
	return values[0]
}

func scalarSetter(name string) func(target, value any) error {
	return func(target, value any) error {
		record, ok := target.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: target must be map[string]any", formbind.ErrInvalidTarget)
		}
		record[name] = value
		return nil
	}
}

func appendSetter(name string) func(target, value any) error {
	return func(target, value any) error {
		record, ok := target.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: target must be map[string]any", formbind.ErrInvalidTarget)
		}
		existing, _ := record[name].([]any)
		record[name] = append(existing, value)
		return nil
	}
}
