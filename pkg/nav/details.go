package nav

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-crudgen/pkg/model"
)

// DetailItems renders the detail-card list: one item per field with the field
// label and its display value.
func DetailItems(obj any, fields []model.Field) (string, error) {
	var b strings.Builder
	for _, field := range fields {
		value, err := model.Value(obj, field)
		if err != nil {
			return "", fmt.Errorf("nav: detail items: %w", err)
		}
		b.WriteString(`<li class="item"><div class="item-info">`)
		b.WriteString(`<a href="javascript:void(0)" class="product-title">`)
		b.WriteString(html.EscapeString(field.Label))
		b.WriteString(`</a><p>`)
		b.WriteString(displayValue(value))
		b.WriteString(`</p></div></li><!-- /.item -->`)
	}
	return b.String(), nil
}
