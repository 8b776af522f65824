package model

// FieldKind is the simplified enum for admin-friendly field kinds.
type FieldKind string

const (
	KindString  FieldKind = "string"
	KindInteger FieldKind = "integer"
	KindNumber  FieldKind = "number"
	KindBoolean FieldKind = "boolean"
	KindTime    FieldKind = "time"
)

// Field describes a single model column as the admin surfaces see it: the Go
// struct field, the database column behind it, and the human label shown in
// tables, detail cards, and forms.
type Field struct {
	Name   string    `json:"name"`
	Column string    `json:"column"`
	Label  string    `json:"label"`
	Kind   FieldKind `json:"kind"`
	PK     bool      `json:"pk,omitempty"`
}

// Metadata is the top-level description of a registered model. Name doubles as
// the route segment and the `<model>_<action>` route-name prefix.
type Metadata struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	LabelPlural string  `json:"labelPlural"`
	Fields      []Field `json:"fields"`
}

// Field returns the field with the given column name.
func (m Metadata) Field(column string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Column == column {
			return field, true
		}
	}
	return Field{}, false
}

// PKField returns the primary key field. When no field carries a pk marker the
// first field is assumed to be the key, matching the storage layer convention.
func (m Metadata) PKField() Field {
	for _, field := range m.Fields {
		if field.PK {
			return field
		}
	}
	if len(m.Fields) > 0 {
		return m.Fields[0]
	}
	return Field{}
}

// Columns returns the column names in declaration order.
func (m Metadata) Columns() []string {
	out := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		out = append(out, field.Column)
	}
	return out
}

// HasColumn reports whether column belongs to the model. Views use it to
// reject sort parameters that do not map to a declared field.
func (m Metadata) HasColumn(column string) bool {
	_, ok := m.Field(column)
	return ok
}

// Labeled lets a model override the default label derived from its type name.
type Labeled interface {
	ModelLabel() string
}

// PluralLabeled lets a model override the pluralised label.
type PluralLabeled interface {
	ModelLabelPlural() string
}
