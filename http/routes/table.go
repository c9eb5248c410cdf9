package routes

import (
	"fmt"
	"sort"
	"strings"
)

// The Resolver maps a parameter set to a URL path and a request path
// back to the route state that matched it.
type Resolver interface {
	Generate(values map[string]string) (string, error)
	Recognize(path string) (*RequestState, error)
}

// A Table is an ordered collection of Routes implementing Resolver.
// Routes are consulted in registration order; the first capable route wins.
//
// A Table is built once during application setup and read concurrently
// afterwards; it must not be mutated while serving requests.
type Table struct {
	routes []*Route
}

// NewTable constructs a *Table from the given Routes.
func NewTable(rs ...*Route) *Table {
	t := new(Table)
	for _, r := range rs {
		t.Add(r)
	}

	return t
}

// Add appends the Route to the Table.
func (t *Table) Add(r *Route) { t.routes = append(t.routes, r) }

// Generate returns the path of the first registered Route whose
// literal and parameter slots can represent values.
//
// When no route can, Generate fails with ErrNoMatchingRoute carrying
// the attempted parameter set for diagnostics.
func (t *Table) Generate(values map[string]string) (string, error) {
	for _, r := range t.routes {
		if path, ok := r.generate(values); ok {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoMatchingRoute, formatValues(values))
}

// Recognize matches path against the registered Routes,
// returning the *RequestState for the first that matches.
func (t *Table) Recognize(path string) (*RequestState, error) {
	for _, r := range t.routes {
		if slots, ok := r.recognize(path); ok {
			return &RequestState{route: r, slots: slots}, nil
		}
	}

	return nil, fmt.Errorf("%w: no route recognizes path %q", ErrNoMatchingRoute, path)
}

// formatValues renders an attempted parameter set with stable key order.
func formatValues(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, values[k]))
	}

	return "{" + strings.Join(pairs, ", ") + "}"
}
