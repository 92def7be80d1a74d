package gen

import (
	"bytes"
	"go/format"
	"strings"
	"text/template"

	"github.com/transientgo/transient/errors"
	"github.com/transientgo/transient/transience"
)

var implTemplate = template.Must(template.New("impl").Parse(`// Code generated by transientgen. DO NOT EDIT.

package {{.Pkg}}

import (
	"reflect"

{{if not .Generic}}	"github.com/transientgo/transient"
{{end}}	"github.com/transientgo/transient/transience"
)

{{if .Region -}}
// StaticType returns the runtime tag of the canonical unbounded
// counterpart of {{.Name}}: the declaration with region parameter {{.Region}}
// replaced by the unbounded region.
{{- else -}}
// StaticType returns the runtime tag of {{.Name}}, which has no region
// parameter and is its own canonical unbounded counterpart.
{{- end}}
func ({{.Recv}}) StaticType() reflect.Type { return reflect.TypeFor[{{.Recv}}]() }

{{if .Region -}}
// Transience declares the region parameter {{.Region}} of {{.Name}} as
// {{.VarianceName}}.
{{- else -}}
// Transience declares that {{.Name}} has no region parameter.
{{- end}}
func ({{.Recv}}) Transience() transience.Transience { return transience.{{.Ctor}}() }
{{if not .Generic}}
var _ = transient.Validate[{{.Name}}]()
{{end}}`))

type implData struct {
	Pkg          string
	Name         string
	Recv         string
	Region       string
	VarianceName string
	Ctor         string
	Generic      bool
}

// Source renders the Go implementation of the mapping and formats it.
func (m *Mapping) Source() ([]byte, error) {
	if m.Decl.Pkg == "" {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidDecl).
			Decl(m.Decl.Name).
			Detail("declaration carries no package name").
			Build()
	}

	data := implData{
		Pkg:          m.Decl.Pkg,
		Name:         m.Decl.Name,
		Recv:         m.receiver(),
		Region:       m.Region,
		VarianceName: m.Variance.String(),
		Ctor:         ctorFor(m),
		Generic:      len(m.Decl.TypeParams) > 0,
	}

	var buf bytes.Buffer
	if err := implTemplate.Execute(&buf, data); err != nil {
		return nil, errors.New(errors.PhaseGenerate, errors.KindUnsupported).
			Decl(m.Decl.Name).
			Cause(err).
			Detail("template execution failed").
			Build()
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidDecl).
			Decl(m.Decl.Name).
			Cause(err).
			Detail("generated source does not format").
			Build()
	}
	return src, nil
}

// receiver renders the original type reference for use as a method
// receiver, including its type parameter list.
func (m *Mapping) receiver() string {
	if len(m.Decl.TypeParams) == 0 {
		return m.Decl.Name
	}
	names := make([]string, len(m.Decl.TypeParams))
	for i, tp := range m.Decl.TypeParams {
		names[i] = tp.Name
	}
	return m.Decl.Name + "[" + strings.Join(names, ", ") + "]"
}

func ctorFor(m *Mapping) string {
	if m.Identity() {
		return "None"
	}
	switch m.Variance {
	case transience.Covariant:
		return "Co"
	case transience.Contravariant:
		return "Contra"
	default:
		return "Inv"
	}
}
