package model

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/jinzhu/inflection"
	"github.com/uptrace/bun"
)

var (
	baseModelType = reflect.TypeOf(bun.BaseModel{})
	timeType      = reflect.TypeOf(time.Time{})
)

// Describe builds Metadata for a bun-annotated struct (or pointer to one).
// Column names and the pk marker come from the `bun` tag; labels come from an
// optional `label` tag, falling back to DefaultLabeler. The pluralised label
// comes from an optional `plural` tag, falling back to inflection.
func Describe(value any) (Metadata, error) {
	typ := reflect.TypeOf(value)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return Metadata{}, fmt.Errorf("model: describe expects a struct, got %T", value)
	}

	meta := Metadata{
		Name:  strings.ToLower(typ.Name()),
		Label: DefaultLabeler(typ.Name()),
	}

	if labeled, ok := value.(Labeled); ok {
		meta.Label = labeled.ModelLabel()
	}

	plural := ""
	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)
		if !structField.IsExported() {
			continue
		}
		if structField.Anonymous && structField.Type == baseModelType {
			continue
		}

		tag := parseBunTag(structField.Tag.Get("bun"))
		if tag.skip {
			continue
		}

		column := tag.column
		if column == "" {
			column = snakeCase(structField.Name)
		}

		label := structField.Tag.Get("label")
		if label == "" {
			label = DefaultLabeler(structField.Name)
		}
		if p := structField.Tag.Get("plural"); p != "" {
			plural = p
		}

		meta.Fields = append(meta.Fields, Field{
			Name:   structField.Name,
			Column: column,
			Label:  label,
			Kind:   kindOf(structField.Type),
			PK:     tag.pk,
		})
	}

	if len(meta.Fields) == 0 {
		return Metadata{}, fmt.Errorf("model: struct %s has no usable fields", typ.Name())
	}

	if pluraled, ok := value.(PluralLabeled); ok {
		meta.LabelPlural = pluraled.ModelLabelPlural()
	} else if plural != "" {
		meta.LabelPlural = plural
	} else {
		meta.LabelPlural = inflection.Plural(meta.Label)
	}

	return meta, nil
}

// MustDescribe panics on description failure. Useful for init-time wiring.
func MustDescribe(value any) Metadata {
	meta, err := Describe(value)
	if err != nil {
		panic(err)
	}
	return meta
}

type bunTag struct {
	column string
	pk     bool
	skip   bool
}

func parseBunTag(raw string) bunTag {
	if raw == "-" {
		return bunTag{skip: true}
	}
	var tag bunTag
	parts := strings.Split(raw, ",")
	if len(parts) > 0 && !strings.Contains(parts[0], ":") {
		tag.column = strings.TrimSpace(parts[0])
	}
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "pk" {
			tag.pk = true
		}
	}
	return tag
}

func kindOf(typ reflect.Type) FieldKind {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == timeType {
		return KindTime
	}
	switch typ.Kind() {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger
	case reflect.Float32, reflect.Float64:
		return KindNumber
	default:
		return KindString
	}
}

func snakeCase(name string) string {
	var out strings.Builder
	out.Grow(len(name) + 4)
	for i, r := range name {
		if isUpper(r) {
			if i > 0 && (isLower(rune(name[i-1])) || isDigit(rune(name[i-1]))) {
				out.WriteByte('_')
			}
			out.WriteRune(r - 'A' + 'a')
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
