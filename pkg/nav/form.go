package nav

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-crudgen/pkg/model"
)

// FormFields renders a form group per editable field. The primary key is
// skipped, inputs are typed by field kind, and obj prefills the values; pass
// nil for an empty create form.
func FormFields(meta model.Metadata, obj any) (string, error) {
	var b strings.Builder
	pk := meta.PKField()
	for _, field := range meta.Fields {
		if field.Column == pk.Column {
			continue
		}

		var value any
		if obj != nil {
			raw, err := model.RawValue(obj, field)
			if err != nil {
				return "", fmt.Errorf("nav: form field %q: %w", field.Column, err)
			}
			value = raw
		}

		if field.Kind == model.KindBoolean {
			b.WriteString(checkboxGroup(field, value == true))
			continue
		}
		b.WriteString(inputGroup(field, value))
	}
	return b.String(), nil
}

func inputGroup(field model.Field, value any) string {
	id := "id_" + field.Column
	var b strings.Builder
	b.WriteString(`<div class="form-group">`)
	b.WriteString(`<label for="`)
	b.WriteString(id)
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(field.Label))
	b.WriteString(`</label>`)
	b.WriteString(`<input type="`)
	b.WriteString(inputType(field.Kind))
	b.WriteString(`" class="form-control" id="`)
	b.WriteString(id)
	b.WriteString(`" name="`)
	b.WriteString(field.Column)
	b.WriteString(`"`)
	if field.Kind == model.KindNumber {
		b.WriteString(` step="any"`)
	}
	if formatted := inputValue(field.Kind, value); formatted != "" {
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(formatted))
		b.WriteString(`"`)
	}
	b.WriteString(`></div>`)
	return b.String()
}

func checkboxGroup(field model.Field, checked bool) string {
	id := "id_" + field.Column
	var b strings.Builder
	b.WriteString(`<div class="form-group form-check">`)
	b.WriteString(`<input type="checkbox" class="form-check-input" id="`)
	b.WriteString(id)
	b.WriteString(`" name="`)
	b.WriteString(field.Column)
	b.WriteString(`"`)
	if checked {
		b.WriteString(` checked`)
	}
	b.WriteString(`>`)
	b.WriteString(`<label class="form-check-label" for="`)
	b.WriteString(id)
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(field.Label))
	b.WriteString(`</label></div>`)
	return b.String()
}

func inputType(kind model.FieldKind) string {
	switch kind {
	case model.KindInteger, model.KindNumber:
		return "number"
	case model.KindTime:
		return "datetime-local"
	default:
		return "text"
	}
}

func inputValue(kind model.FieldKind, value any) string {
	if value == nil {
		return ""
	}
	if kind == model.KindTime {
		if ts, ok := value.(time.Time); ok {
			if ts.IsZero() {
				return ""
			}
			return ts.Format("2006-01-02T15:04")
		}
	}
	return fmt.Sprint(value)
}
