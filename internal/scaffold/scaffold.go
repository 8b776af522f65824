// Package scaffold generates model source files for the crudgen CLI: a
// bun-annotated struct plus the admin registration call, ready to drop into a
// host application.
package scaffold

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/jinzhu/inflection"

	"github.com/goliatone/go-crudgen/pkg/model"
)

// FieldSpec is one field of a scaffolded model.
type FieldSpec struct {
	Name string
	Kind model.FieldKind
}

// ModelSpec describes the model to generate.
type ModelSpec struct {
	Name    string
	Package string
	Table   string
	Fields  []FieldSpec
}

// fieldKinds maps the CLI kind vocabulary onto field kinds.
var fieldKinds = map[string]model.FieldKind{
	"string": model.KindString,
	"text":   model.KindString,
	"int":    model.KindInteger,
	"float":  model.KindNumber,
	"bool":   model.KindBoolean,
	"time":   model.KindTime,
}

// Kinds returns the accepted field kind names.
func Kinds() []string {
	return []string{"string", "text", "int", "float", "bool", "time"}
}

// ParseFields parses a comma-separated "name:kind" list, e.g.
// "title:string,reads:int,due_at:time".
func ParseFields(raw string) ([]FieldSpec, error) {
	var fields []FieldSpec
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, kindName, found := strings.Cut(part, ":")
		if !found {
			kindName = "string"
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("scaffold: empty field name in %q", part)
		}
		kind, ok := fieldKinds[strings.TrimSpace(kindName)]
		if !ok {
			return nil, fmt.Errorf("scaffold: unknown field kind %q, accepted: %s",
				kindName, strings.Join(Kinds(), ", "))
		}
		fields = append(fields, FieldSpec{Name: name, Kind: kind})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("scaffold: at least one field is required")
	}
	return fields, nil
}

// Validate checks the spec and fills derivable defaults.
func (s *ModelSpec) Validate() error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return fmt.Errorf("scaffold: model name is required")
	}
	if strings.ContainsAny(s.Name, " \t-") {
		return fmt.Errorf("scaffold: model name %q must be a single identifier", s.Name)
	}
	if s.Package == "" {
		s.Package = "main"
	}
	if s.Table == "" {
		s.Table = snakePlural(s.Name)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("scaffold: at least one field is required")
	}
	return nil
}

var modelTemplate = template.Must(template.New("model").Parse(`package {{ .Package }}

import (
{{- if .NeedsTime }}
	"time"

{{- end }}
	"github.com/uptrace/bun"

	crudgen "github.com/goliatone/go-crudgen"
)

type {{ .TypeName }} struct {
	bun.BaseModel ` + "`" + `bun:"table:{{ .Table }}"` + "`" + `

	ID int64 ` + "`" + `bun:"id,pk,autoincrement"` + "`" + `
{{- range .Fields }}
	{{ .GoName }} {{ .GoType }} ` + "`" + `bun:"{{ .Column }}"` + "`" + `
{{- end }}
}

// Register{{ .TypeName }} attaches the scaffolded admin routes for {{ .TypeName }}.
func Register{{ .TypeName }}(admin *crudgen.Admin) error {
	_, err := crudgen.Register[{{ .TypeName }}](admin)
	return err
}
`))

type templateField struct {
	GoName string
	GoType string
	Column string
}

type templateData struct {
	Package   string
	TypeName  string
	Table     string
	Fields    []templateField
	NeedsTime bool
}

// Generate renders the model source file for a spec and gofmt-formats it.
func Generate(spec ModelSpec) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	data := templateData{
		Package:  spec.Package,
		TypeName: exportName(spec.Name),
		Table:    spec.Table,
	}
	for _, field := range spec.Fields {
		typeName, needsTime := goType(field.Kind)
		data.NeedsTime = data.NeedsTime || needsTime
		data.Fields = append(data.Fields, templateField{
			GoName: exportName(field.Name),
			GoType: typeName,
			Column: snake(field.Name),
		})
	}

	var buf bytes.Buffer
	if err := modelTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("scaffold: render model: %w", err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("scaffold: format generated source: %w", err)
	}
	return formatted, nil
}

func goType(kind model.FieldKind) (name string, needsTime bool) {
	switch kind {
	case model.KindInteger:
		return "int64", false
	case model.KindNumber:
		return "float64", false
	case model.KindBoolean:
		return "bool", false
	case model.KindTime:
		return "time.Time", true
	default:
		return "string", false
	}
}

// exportName turns snake_case or lowercase input into an exported Go name.
func exportName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == ' ' })
	var b strings.Builder
	for _, part := range parts {
		if part == "id" {
			b.WriteString("ID")
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

func snake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		if r == ' ' || r == '-' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func snakePlural(name string) string {
	return inflection.Plural(snake(name))
}
