package nav

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-crudgen/pkg/model"
	"github.com/goliatone/go-crudgen/pkg/urls"
)

// ActionKind selects the row action button rendered in the table's Actions
// column. The ajax variants emit data-url buttons the dashboard scripts wire
// to modal requests instead of plain links.
type ActionKind string

const (
	ActionDetail     ActionKind = "detail"
	ActionDetailAJAX ActionKind = "detail_ajax"
	ActionUpdate     ActionKind = "update"
	ActionDelete     ActionKind = "delete"
	ActionDeleteAJAX ActionKind = "delete_ajax"
)

// Action pairs an action kind with an optional route-name override. An empty
// RouteName falls back to the `<model>_<action>` convention.
type Action struct {
	Kind      ActionKind
	RouteName string
}

// TableHeader renders one <th> per field with sort toggle links. The current
// sort column carries an order indicator icon and links to the opposite
// direction.
func TableHeader(meta model.Metadata, fields []model.Field, sort, order string, hasActions bool) string {
	var b strings.Builder
	for _, field := range fields {
		b.WriteString(`<th><a href="?sort=`)
		b.WriteString(html.EscapeString(field.Column))
		switch {
		case sort == field.Column && order == "asc":
			b.WriteString(`&order=desc">`)
			b.WriteString(html.EscapeString(field.Label))
			b.WriteString(`<i class="fas fa-sort-up"></i>`)
		case sort == field.Column && order == "desc":
			b.WriteString(`&order=asc">`)
			b.WriteString(html.EscapeString(field.Label))
			b.WriteString(`<i class="fas fa-sort-down"></i>`)
		default:
			b.WriteString(`&order=asc">`)
			b.WriteString(html.EscapeString(field.Label))
		}
		b.WriteString(`</a></th>`)
	}
	if hasActions {
		b.WriteString(`<th>Actions</th>`)
	}
	return b.String()
}

// TableBody renders one row per object with a trailing actions column. An
// empty object list renders the placeholder row.
func TableBody(meta model.Metadata, objects []any, fields []model.Field, actions []Action, resolver *urls.Resolver) (string, error) {
	var b strings.Builder
	if len(objects) == 0 {
		b.WriteString(`<tr><td colspan="100%">No data available</td></tr>`)
		return b.String(), nil
	}

	for _, obj := range objects {
		b.WriteString(`<tr>`)
		for _, field := range fields {
			value, err := model.Value(obj, field)
			if err != nil {
				return "", fmt.Errorf("nav: table body: %w", err)
			}
			b.WriteString(`<td>`)
			b.WriteString(displayValue(value))
			b.WriteString(`</td>`)
		}

		cell, err := actionButtons(meta, obj, actions, resolver)
		if err != nil {
			return "", err
		}
		b.WriteString(cell)
		b.WriteString(`</tr>`)
	}
	return b.String(), nil
}

func actionButtons(meta model.Metadata, obj any, actions []Action, resolver *urls.Resolver) (string, error) {
	if len(actions) == 0 {
		return "", nil
	}

	pk, err := model.PKValue(meta, obj)
	if err != nil {
		return "", fmt.Errorf("nav: action buttons: %w", err)
	}

	var b strings.Builder
	b.WriteString(`<td class="text-center">`)
	for _, action := range actions {
		url, err := actionURL(meta, action, pk, resolver)
		if err != nil {
			return "", err
		}
		switch action.Kind {
		case ActionDetail:
			b.WriteString(`<a href="` + html.EscapeString(url) + `" class="btn btn-info btn-sm m-1"><i class="fas fa-eye"></i></a>`)
		case ActionDetailAJAX:
			b.WriteString(`<a data-url="` + html.EscapeString(url) + `" class="btn btn-info btn-sm m-1 detail-ajax"><i class="fas fa-eye"></i></a>`)
		case ActionUpdate:
			b.WriteString(`<a href="` + html.EscapeString(url) + `" class="btn btn-warning btn-sm m-1"><i class="fas fa-edit"></i></a>`)
		case ActionDelete:
			b.WriteString(`<a href="` + html.EscapeString(url) + `" class="btn btn-danger btn-sm m-1"><i class="fas fa-trash"></i></a>`)
		case ActionDeleteAJAX:
			b.WriteString(`<a data-url="` + html.EscapeString(url) + `" class="btn btn-danger btn-sm m-1 delete-ajax"><i class="fas fa-trash"></i></a>`)
		default:
			return "", fmt.Errorf("nav: unknown action kind %q", action.Kind)
		}
	}
	b.WriteString(`</td>`)
	return b.String(), nil
}

func actionURL(meta model.Metadata, action Action, pk any, resolver *urls.Resolver) (string, error) {
	name := action.RouteName
	if name == "" {
		name = urls.Name(meta.Name, routeAction(action.Kind))
	}
	url, err := resolver.Reverse(name, pk)
	if err != nil {
		return "", fmt.Errorf("nav: action %s: %w", action.Kind, err)
	}
	return url, nil
}

// routeAction maps the ajax variants onto their underlying route.
func routeAction(kind ActionKind) string {
	switch kind {
	case ActionDetailAJAX:
		return urls.ActionDetail
	case ActionDeleteAJAX:
		return urls.ActionDelete
	default:
		return string(kind)
	}
}
