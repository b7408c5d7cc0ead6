// Package gen generates reflection-free formbind schemas for struct types.
//
// For each requested struct it loads the enclosing package with go/packages,
// reads the `form` tags off the struct definition, and emits a
// <Type>Schema() constructor plus a Bind<Type>() helper whose setters assign
// struct fields directly. The generated code goes through the same Bind
// resolution as reflection-derived schemas, it only skips the per-bind
// reflection cost, much like the derive-style providers it replaces.
package gen

import (
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// loadMode requests everything needed to type-check struct definitions.
const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// GeneratedFile is one rendered, gofmt-formatted source file.
type GeneratedFile struct {
	// Filename is the basename of the output file.
	Filename string
	// Dir is the directory of the analyzed package.
	Dir string
	// Content is the formatted Go source.
	Content []byte
}

// Generate loads the package matching pattern and renders schemas for the
// named struct types. All requested types must be exported structs defined
// in that package.
func Generate(pattern string, typeNames []string) (*GeneratedFile, error) {
	if len(typeNames) == 0 {
		return nil, fmt.Errorf("no types requested")
	}

	cfg := &packages.Config{Mode: loadMode}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pattern, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want exactly one", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	for _, e := range pkg.Errors {
		return nil, fmt.Errorf("package %s: %v", pkg.PkgPath, e)
	}

	data := &templateData{PackageName: pkg.Name}
	for _, typeName := range typeNames {
		spec, err := analyzeStruct(pkg, typeName)
		if err != nil {
			return nil, err
		}
		data.Types = append(data.Types, *spec)
		data.mergeImports(spec.imports)
	}

	content, err := render(data)
	if err != nil {
		return nil, err
	}

	dir := ""
	if len(pkg.GoFiles) > 0 {
		dir = filepath.Dir(pkg.GoFiles[0])
	}

	return &GeneratedFile{
		Filename: outputName(typeNames),
		Dir:      dir,
		Content:  content,
	}, nil
}

func outputName(typeNames []string) string {
	if len(typeNames) == 1 {
		return strings.ToLower(typeNames[0]) + "_formbind.go"
	}
	return "formbind_gen.go"
}

// typeSpec describes one struct's generated schema.
type typeSpec struct {
	Name    string
	Fields  []fieldSpec
	imports []string
}

// fieldSpec describes one descriptor in the generated schema.
type fieldSpec struct {
	StructField string // Go field name on the record
	Name        string // form key
	Cardinality string // formbind cardinality expression
	Convert     string // converter expression, empty for identity strings
	Shape       string // "value", "pointer" or "slice"
	AssertType  string // type the converter's value asserts to
	CastType    string // record field element type when it differs from AssertType
}

// analyzeStruct resolves a named struct and maps its tagged fields.
func analyzeStruct(pkg *packages.Package, typeName string) (*typeSpec, error) {
	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return nil, fmt.Errorf("type %q not found in package %s", typeName, pkg.PkgPath)
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("type %q is not a named type", typeName)
	}
	structType, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("type %q is not a struct", typeName)
	}

	spec := &typeSpec{Name: typeName}
	seen := make(map[string]struct{})
	for i := range structType.NumFields() {
		field := structType.Field(i)
		if !field.Exported() || field.Embedded() {
			continue
		}

		tag := reflect.StructTag(structType.Tag(i)).Get("form")
		name, opts, skip := parseTag(field.Name(), tag)
		if skip {
			continue
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s: duplicate form key %q", typeName, name)
		}
		seen[name] = struct{}{}

		fs, imports, err := fieldFor(pkg, field, name, opts)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typeName, field.Name(), err)
		}
		spec.Fields = append(spec.Fields, fs)
		spec.imports = append(spec.imports, imports...)
	}

	if len(spec.Fields) == 0 {
		return nil, fmt.Errorf("type %q has no bindable fields", typeName)
	}
	return spec, nil
}

// tagOptions mirrors the reflection provider's tag grammar.
type tagOptions struct {
	required bool
	optional bool
	sanitize bool
	layout   string
}

func parseTag(fieldName, tag string) (name string, opts tagOptions, skip bool) {
	if tag == "" {
		return strings.ToLower(fieldName), tagOptions{}, false
	}
	if tag == "-" {
		return "", tagOptions{}, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = strings.ToLower(fieldName)
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

// fieldFor maps one struct field to its descriptor spec.
func fieldFor(pkg *packages.Package, field *types.Var, name string, opts tagOptions) (fieldSpec, []string, error) {
	ft := field.Type()

	switch t := ft.(type) {
	case *types.Slice:
		conv, err := conversionFor(pkg, t.Elem(), opts)
		if err != nil {
			return fieldSpec{}, nil, err
		}
		cardinality := "formbind.OptionalMany"
		if opts.required {
			cardinality = "formbind.RequiredMany"
		}
		return fieldSpec{
			StructField: field.Name(),
			Name:        name,
			Cardinality: cardinality,
			Convert:     conv.expr,
			Shape:       "slice",
			AssertType:  conv.assertType,
			CastType:    conv.castType,
		}, conv.imports, nil

	case *types.Pointer:
		if opts.required {
			return fieldSpec{}, nil, fmt.Errorf("pointer fields are optional, drop the required option or use a value field")
		}
		conv, err := conversionFor(pkg, t.Elem(), opts)
		if err != nil {
			return fieldSpec{}, nil, err
		}
		return fieldSpec{
			StructField: field.Name(),
			Name:        name,
			Cardinality: "formbind.Optional",
			Convert:     conv.expr,
			Shape:       "pointer",
			AssertType:  conv.assertType,
			CastType:    conv.castType,
		}, conv.imports, nil

	default:
		conv, err := conversionFor(pkg, ft, opts)
		if err != nil {
			return fieldSpec{}, nil, err
		}
		cardinality := "formbind.Required"
		if opts.optional {
			cardinality = "formbind.Optional"
		}
		return fieldSpec{
			StructField: field.Name(),
			Name:        name,
			Cardinality: cardinality,
			Convert:     conv.expr,
			Shape:       "value",
			AssertType:  conv.assertType,
			CastType:    conv.castType,
		}, conv.imports, nil
	}
}

// conversion captures the generated converter expression and the types the
// setter needs: the converter's output type for the assertion and the field
// element type when a cast is required (named basic types).
type conversion struct {
	expr       string
	assertType string
	castType   string
	imports    []string
}

// Well-known named types the generator special-cases.
const (
	timePkg = "time"
	uuidPkg = "github.com/google/uuid"
	langPkg = "golang.org/x/text/language"
)

// conversionFor selects conversion for one element type.
func conversionFor(pkg *packages.Package, t types.Type, opts tagOptions) (conversion, error) {
	if named, ok := t.(*types.Named); ok {
		obj := named.Obj()
		if obj.Pkg() != nil {
			switch {
			case obj.Pkg().Path() == timePkg && obj.Name() == "Time":
				layout := "time.RFC3339"
				if opts.layout != "" {
					layout = strconv.Quote(opts.layout)
				}
				return conversion{
					expr:       "formbind.Time(" + layout + ")",
					assertType: "time.Time",
					imports:    []string{timePkg},
				}, nil

			case obj.Pkg().Path() == uuidPkg && obj.Name() == "UUID":
				return conversion{
					expr:       "formbind.UUID",
					assertType: "uuid.UUID",
					imports:    []string{uuidPkg},
				}, nil

			case obj.Pkg().Path() == langPkg && obj.Name() == "Tag":
				return conversion{
					expr:       "formbind.Language",
					assertType: "language.Tag",
					imports:    []string{langPkg},
				}, nil
			}
		}

		basic, ok := named.Underlying().(*types.Basic)
		if !ok {
			return conversion{}, fmt.Errorf("unsupported type %s", t)
		}
		if obj.Pkg() == nil || obj.Pkg().Path() != pkg.PkgPath {
			return conversion{}, fmt.Errorf("named type %s must be defined in the generated package", t)
		}
		conv, err := basicConversion(basic, opts)
		if err != nil {
			return conversion{}, err
		}
		conv.castType = obj.Name()
		return conv, nil
	}

	basic, ok := t.(*types.Basic)
	if !ok {
		return conversion{}, fmt.Errorf("unsupported type %s", t)
	}
	return basicConversion(basic, opts)
}

// basicConversion maps a basic kind to a package converter.
func basicConversion(basic *types.Basic, opts tagOptions) (conversion, error) {
	switch basic.Kind() {
	case types.String:
		expr := ""
		if opts.sanitize {
			expr = "formbind.Sanitized(nil)"
		}
		return conversion{expr: expr, assertType: "string"}, nil
	case types.Int:
		return conversion{expr: "formbind.Int", assertType: "int"}, nil
	case types.Int64:
		return conversion{expr: "formbind.Int64", assertType: "int64"}, nil
	case types.Uint:
		return conversion{expr: "formbind.Uint", assertType: "uint"}, nil
	case types.Uint64:
		return conversion{expr: "formbind.Uint64", assertType: "uint64"}, nil
	case types.Float64:
		return conversion{expr: "formbind.Float64", assertType: "float64"}, nil
	case types.Bool:
		return conversion{expr: "formbind.Bool", assertType: "bool"}, nil
	default:
		return conversion{}, fmt.Errorf("unsupported basic type %s", basic.Name())
	}
}
