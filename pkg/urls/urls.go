// Package urls implements the `<model>_<action>` route-name convention and a
// small resolver that reverses names back into concrete paths.
package urls

import "strings"

// Conventional CRUD action names.
const (
	ActionList   = "list"
	ActionCreate = "create"
	ActionDetail = "detail"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Name builds a conventional route name from a model name and action.
func Name(model, action string) string {
	if action == "" {
		return model
	}
	return model + "_" + action
}

// ListName returns the conventional list route name for a model.
func ListName(model string) string { return Name(model, ActionList) }

// CreateName returns the conventional create route name for a model.
func CreateName(model string) string { return Name(model, ActionCreate) }

// DetailName returns the conventional detail route name for a model.
func DetailName(model string) string { return Name(model, ActionDetail) }

// UpdateName returns the conventional update route name for a model.
func UpdateName(model string) string { return Name(model, ActionUpdate) }

// DeleteName returns the conventional delete route name for a model.
func DeleteName(model string) string { return Name(model, ActionDelete) }

// Split breaks a route name into model and action at the FIRST underscore.
// Names without an underscore yield an empty action.
func Split(name string) (model, action string) {
	idx := strings.Index(name, "_")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// Group is one model's worth of registered route names, in registration order.
type Group struct {
	Model   string
	Actions []string
}

// GroupByModel groups an ordered list of route names by the model prefix,
// preserving first-seen model order.
func GroupByModel(names []string) []Group {
	var groups []Group
	index := map[string]int{}
	for _, name := range names {
		model, action := Split(name)
		if at, ok := index[model]; ok {
			groups[at].Actions = append(groups[at].Actions, action)
			continue
		}
		index[model] = len(groups)
		groups = append(groups, Group{Model: model, Actions: []string{action}})
	}
	return groups
}
