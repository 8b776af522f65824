// Package nav builds the navigation HTML fragments admin pages embed:
// breadcrumbs, navbar links, sidebar items, table headers/bodies, and detail
// cards. All fragments follow the AdminLTE class conventions.
package nav

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var valuePolicy = bluemonday.StrictPolicy()

// Crumb is a single breadcrumb entry.
type Crumb struct {
	Title string
	URL   string
}

// Link is a single navbar entry.
type Link struct {
	Title string
	URL   string
}

// Breadcrumbs renders an ordered breadcrumb trail. The crumb whose URL equals
// currentPath renders as the active item without a link.
func Breadcrumbs(crumbs []Crumb, currentPath string) string {
	var b strings.Builder
	for _, crumb := range crumbs {
		if currentPath != "" && crumb.URL == currentPath {
			b.WriteString(`<li class="breadcrumb-item active">`)
			b.WriteString(html.EscapeString(crumb.Title))
			b.WriteString(`</li>`)
			continue
		}
		b.WriteString(`<li class="breadcrumb-item"><a href="`)
		b.WriteString(html.EscapeString(crumb.URL))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(crumb.Title))
		b.WriteString(`</a></li>`)
	}
	return b.String()
}

// NavbarLinks renders the top navbar links. The link whose URL equals
// currentPath renders active with an anchor href.
func NavbarLinks(links []Link, currentPath string) string {
	var b strings.Builder
	for _, link := range links {
		if link.URL == currentPath {
			b.WriteString(`<li class="nav-item d-none d-sm-inline-block"><a href="#" class="nav-link active">`)
			b.WriteString(html.EscapeString(link.Title))
			b.WriteString(`</a></li>`)
			continue
		}
		b.WriteString(`<li class="nav-item d-none d-sm-inline-block"><a href="`)
		b.WriteString(html.EscapeString(link.URL))
		b.WriteString(`" class="nav-link">`)
		b.WriteString(html.EscapeString(link.Title))
		b.WriteString(`</a></li>`)
	}
	return b.String()
}

// displayValue strips markup from a field value before it is embedded. The
// strict policy escapes entities itself, so the output is safe HTML text.
func displayValue(value any) string {
	if value == nil {
		return ""
	}
	return valuePolicy.Sanitize(fmt.Sprint(value))
}
