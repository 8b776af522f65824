package nav

import (
	"html"
	"strings"

	"github.com/goliatone/go-crudgen/pkg/model"
	"github.com/goliatone/go-crudgen/pkg/urls"
)

// MetadataLookup resolves a model name to its metadata. Sidebar titles fall
// back to the default labeler when the lookup misses.
type MetadataLookup func(name string) (model.Metadata, bool)

// SidebarItems converts the registered routes into sidebar entries. Routes are
// grouped by the `<model>_<action>` convention; groups that expose a list view
// render as a treeview titled with the model label, detail/update/delete never
// surface on their own, and only the first active entry highlights.
func SidebarItems(resolver *urls.Resolver, lookup MetadataLookup, currentPath, header string) string {
	var b strings.Builder
	if header != "" {
		b.WriteString(`<li class="nav-header">`)
		b.WriteString(html.EscapeString(header))
		b.WriteString(`</li>`)
	}

	activeModel := ""
	if name, ok := resolver.Lookup(currentPath); ok {
		activeModel, _ = urls.Split(name)
	}

	activeFound := false
	for _, group := range urls.GroupByModel(resolver.Names()) {
		active := !activeFound && group.Model == activeModel
		b.WriteString(groupItems(resolver, lookup, group, active))
		activeFound = activeFound || active
	}
	return b.String()
}

func groupItems(resolver *urls.Resolver, lookup MetadataLookup, group urls.Group, active bool) string {
	if len(group.Actions) > 1 {
		if containsAction(group.Actions, urls.ActionList) {
			return listTreeview(resolver, lookup, group, active)
		}
		return actionTreeview(resolver, lookup, group, active)
	}

	action := group.Actions[0]
	switch action {
	case urls.ActionDetail, urls.ActionUpdate, urls.ActionDelete:
		return ""
	case "":
		url, err := resolver.Reverse(group.Model)
		if err != nil {
			return ""
		}
		return item(url, modelLabel(lookup, group.Model), active)
	default:
		url, err := resolver.Reverse(urls.Name(group.Model, action))
		if err != nil {
			return ""
		}
		return item(url, model.DefaultLabeler(action), active)
	}
}

func listTreeview(resolver *urls.Resolver, lookup MetadataLookup, group urls.Group, active bool) string {
	url, err := resolver.Reverse(urls.ListName(group.Model))
	if err != nil {
		return ""
	}
	child := item(url, pluralLabel(lookup, group.Model), active)
	return treeview(modelLabel(lookup, group.Model), child, active)
}

func actionTreeview(resolver *urls.Resolver, lookup MetadataLookup, group urls.Group, active bool) string {
	var children strings.Builder
	rendered := false
	for _, action := range group.Actions {
		switch action {
		case urls.ActionDetail, urls.ActionUpdate, urls.ActionDelete:
			continue
		}
		url, err := resolver.Reverse(urls.Name(group.Model, action))
		if err != nil {
			continue
		}
		children.WriteString(item(url, model.DefaultLabeler(action), active && !rendered))
		rendered = true
	}
	if !rendered {
		return ""
	}
	return treeview(modelLabel(lookup, group.Model), children.String(), active)
}

func treeview(title, children string, active bool) string {
	var b strings.Builder
	b.WriteString(`<li class="nav-item`)
	if active {
		b.WriteString(` menu-open`)
	}
	b.WriteString(`"><a href="#" class="nav-link`)
	if active {
		b.WriteString(` active`)
	}
	b.WriteString(`"><i class="nav-icon fas fa-table"></i><p>`)
	b.WriteString(html.EscapeString(title))
	b.WriteString(`<i class="fas fa-angle-left right"></i></p></a><ul class="nav nav-treeview">`)
	b.WriteString(children)
	b.WriteString(`</ul></li>`)
	return b.String()
}

func item(url, title string, active bool) string {
	var b strings.Builder
	b.WriteString(`<li class="nav-item"><a href="`)
	b.WriteString(html.EscapeString(url))
	b.WriteString(`" class="nav-link`)
	if active {
		b.WriteString(` active`)
	}
	b.WriteString(`"><i class="far fa-circle nav-icon"></i><p>`)
	b.WriteString(html.EscapeString(title))
	b.WriteString(`</p></a></li>`)
	return b.String()
}

func modelLabel(lookup MetadataLookup, name string) string {
	if lookup != nil {
		if meta, ok := lookup(name); ok {
			return meta.Label
		}
	}
	return model.DefaultLabeler(name)
}

func pluralLabel(lookup MetadataLookup, name string) string {
	if lookup != nil {
		if meta, ok := lookup(name); ok {
			return meta.LabelPlural
		}
	}
	return model.DefaultLabeler(name)
}

func containsAction(actions []string, want string) bool {
	for _, action := range actions {
		if action == want {
			return true
		}
	}
	return false
}
