package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"text/template"
)

// templateData holds everything the schema template needs.
type templateData struct {
	PackageName string
	Imports     []string
	Types       []typeSpec
}

func (d *templateData) mergeImports(paths []string) {
	for _, p := range paths {
		if !slices.Contains(d.Imports, p) {
			d.Imports = append(d.Imports, p)
		}
	}
	slices.Sort(d.Imports)
}

// render executes the template and gofmt-formats the result.
func render(data *templateData) ([]byte, error) {
	var buf bytes.Buffer
	if err := schemaTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return formatted, nil
}

// assignExpr renders the typed assignment for a setter body.
func assignExpr(f fieldSpec) string {
	value := "value.(" + f.AssertType + ")"
	if f.CastType != "" {
		value = f.CastType + "(" + value + ")"
	}
	switch f.Shape {
	case "slice":
		return "rec." + f.StructField + " = append(rec." + f.StructField + ", " + value + ")"
	case "pointer":
		return "v := " + value + "\n\t\t\t\trec." + f.StructField + " = &v"
	default:
		return "rec." + f.StructField + " = " + value
	}
}

var schemaTemplate = template.Must(template.New("schema").
	Funcs(template.FuncMap{"assign": assignExpr}).
	Parse(`// Code generated by formbindgen. DO NOT EDIT.

package {{.PackageName}}

import (
	"github.com/dmitrymomot/formbind"
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
{{range $t := .Types}}
// {{$t.Name}}Schema returns the form schema for {{$t.Name}}.
// Setters assign record fields directly, no reflection at bind time.
func {{$t.Name}}Schema() *formbind.Schema {
	return formbind.MustSchema(
{{- range $f := $t.Fields}}
		formbind.Field{
			Name:        "{{$f.Name}}",
			Cardinality: {{$f.Cardinality}},
{{- if $f.Convert}}
			Convert:     {{$f.Convert}},
{{- end}}
			Set: func(target, value any) error {
				rec, ok := target.(*{{$t.Name}})
				if !ok {
					return formbind.ErrInvalidTarget
				}
				{{assign $f}}
				return nil
			},
		},
{{- end}}
	)
}

// Bind{{$t.Name}} binds decoded form pairs into a new {{$t.Name}}.
func Bind{{$t.Name}}(pairs formbind.Pairs) (*{{$t.Name}}, error) {
	var rec {{$t.Name}}
	if err := formbind.Bind(&rec, {{$t.Name}}Schema(), pairs); err != nil {
		return nil, err
	}
	return &rec, nil
}
{{end -}}
`))
