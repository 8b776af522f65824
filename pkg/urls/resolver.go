package urls

import (
	"fmt"
	"strings"
	"sync"
)

// Resolver stores named route path templates and reverses names into concrete
// URLs. Path templates use `:param` segments the way the router declares them.
type Resolver struct {
	mu     sync.RWMutex
	routes map[string]string
	order  []string
}

// NewResolver creates an empty resolver instance.
func NewResolver() *Resolver {
	return &Resolver{routes: make(map[string]string)}
}

// Register adds a named route. Duplicate names return an error.
func (r *Resolver) Register(name, path string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("urls: route name is required")
	}
	if path == "" || !strings.HasPrefix(path, "/") {
		return fmt.Errorf("urls: route %q: path must start with /", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[name]; exists {
		return fmt.Errorf("urls: route %q already registered", name)
	}
	r.routes[name] = path
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Resolver) MustRegister(name, path string) {
	if err := r.Register(name, path); err != nil {
		panic(err)
	}
}

// Reverse resolves a route name into a concrete path, substituting `:param`
// segments with args left to right.
func (r *Resolver) Reverse(name string, args ...any) (string, error) {
	r.mu.RLock()
	path, ok := r.routes[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("urls: route %q not found", name)
	}

	segments := strings.Split(path, "/")
	next := 0
	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		if next >= len(args) {
			return "", fmt.Errorf("urls: route %q: missing argument for %s", name, segment)
		}
		segments[i] = fmt.Sprint(args[next])
		next++
	}
	if next < len(args) {
		return "", fmt.Errorf("urls: route %q: %d extra arguments", name, len(args)-next)
	}
	return strings.Join(segments, "/"), nil
}

// Lookup matches a concrete request path back to a registered route name.
// `:param` segments match any non-empty value. The first registered match
// wins.
func (r *Resolver) Lookup(path string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := splitPath(path)
	for _, name := range r.order {
		if segmentsMatch(splitPath(r.routes[name]), want) {
			return name, true
		}
	}
	return "", false
}

// Has reports whether a route name is registered.
func (r *Resolver) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.routes[name]
	return ok
}

// Names returns the registered route names in registration order.
func (r *Resolver) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Path returns the raw path template for a route name.
func (r *Resolver) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.routes[name]
	return path, ok
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func segmentsMatch(pattern, path []string) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, segment := range pattern {
		if strings.HasPrefix(segment, ":") {
			if path[i] == "" {
				return false
			}
			continue
		}
		if segment != path[i] {
			return false
		}
	}
	return true
}
