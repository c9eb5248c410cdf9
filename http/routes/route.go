package routes

import (
	"fmt"
	"strings"
)

// A segment is one slot in a route's grammar:
// either literal text or a named parameter, never both.
type segment struct {
	literal string
	name    string
	def     string
}

func (s segment) named() bool { return s.name != "" }

// A Route is an ordered sequence of literal and named path segments,
// with optional default values per named segment.
type Route struct {
	pattern  string
	segments []segment
	defaults map[string]string
}

// NewRoute parses a pattern like "/clients/:client_name/:controller/:action"
// into a *Route. Segments beginning with ':' are named parameters;
// defaults supplies their default values by name.
func NewRoute(pattern string, defaults map[string]string) (*Route, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q must begin with a slash", ErrBadPattern, pattern)
	}

	r := &Route{pattern: pattern, defaults: make(map[string]string, len(defaults))}
	for name, val := range defaults {
		r.defaults[name] = val
	}

	seen := make(map[string]struct{})
	for _, part := range strings.Split(strings.Trim(pattern, "/"), "/") {
		if part == "" {
			continue
		}

		if !strings.HasPrefix(part, ":") {
			r.segments = append(r.segments, segment{literal: part})
			continue
		}

		name := part[1:]
		if name == "" {
			return nil, fmt.Errorf("%w: %q has an unnamed parameter segment", ErrBadPattern, pattern)
		}

		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %q repeats parameter %q", ErrBadPattern, pattern, name)
		}

		seen[name] = struct{}{}
		r.segments = append(r.segments, segment{name: name, def: defaults[name]})
	}

	return r, nil
}

// Pattern returns the pattern the Route was parsed from.
func (r *Route) Pattern() string { return r.pattern }

// ParamNames returns the route's named parameters in positional order.
func (r *Route) ParamNames() []string {
	names := make([]string, 0, len(r.segments))
	for _, s := range r.segments {
		if s.named() {
			names = append(names, s.name)
		}
	}

	return names
}

// Default returns the declared default value for the named parameter.
func (r *Route) Default(name string) (string, bool) {
	v, ok := r.defaults[name]
	return v, ok
}

// Defaults returns a copy of every declared default, including those
// naming no segment. Defaults naming no segment are constants of the
// route and merge into the recognized parameter set.
func (r *Route) Defaults() map[string]string {
	defaults := make(map[string]string, len(r.defaults))
	for k, v := range r.defaults {
		defaults[k] = v
	}

	return defaults
}

// generate builds a path from the given parameters.
//
// Every named segment takes its value from values, falling back to the
// route's defaults. A segment without any value is permitted only when
// every later named segment also lacks one; the path is then truncated
// before it. Keys in values naming no segment make the route
// unrepresentative of the parameter set.
func (r *Route) generate(values map[string]string) (string, bool) {
	for k := range values {
		if !r.hasParam(k) {
			return "", false
		}
	}

	if len(values) == 0 && len(r.ParamNames()) > 0 {
		return "", false
	}

	var b strings.Builder
	pending := ""
	for _, s := range r.segments {
		if !s.named() {
			pending += "/" + s.literal
			continue
		}

		v, ok := values[s.name]
		if !ok {
			v, ok = r.defaults[s.name]
		}

		if !ok {
			// Only trailing segments may go valueless.
			for _, rest := range r.segments[r.indexOf(s.name)+1:] {
				if !rest.named() {
					continue
				}

				if _, found := values[rest.name]; found {
					return "", false
				}
			}

			b.WriteString(pending)
			pending = ""
			break
		}

		b.WriteString(pending + "/" + v)
		pending = ""
	}

	b.WriteString(pending)
	path := b.String()
	if path == "" {
		path = "/"
	}

	return path, true
}

// recognize matches path against the route, returning the named
// parameter values in positional order. Trailing segments absent from
// path take their defaults when declared.
func (r *Route) recognize(path string) ([]Slot, bool) {
	parts := splitPath(path)

	slots := make([]Slot, 0, len(r.segments))
	i := 0
	for _, s := range r.segments {
		if i >= len(parts) {
			if !s.named() {
				return nil, false
			}

			// a trailing named segment fills from its default,
			// or goes unfilled when it declares none
			def, ok := r.defaults[s.name]
			if !ok {
				continue
			}

			slots = append(slots, Slot{Name: s.name, Value: def, FromDefault: true})
			continue
		}

		if !s.named() {
			if parts[i] != s.literal {
				return nil, false
			}

			i++
			continue
		}

		slots = append(slots, Slot{Name: s.name, Value: parts[i]})
		i++
	}

	if i != len(parts) {
		return nil, false
	}

	return slots, true
}

func (r *Route) hasParam(name string) bool {
	for _, s := range r.segments {
		if s.name == name {
			return true
		}
	}

	return false
}

func (r *Route) indexOf(name string) int {
	for i, s := range r.segments {
		if s.name == name {
			return i
		}
	}

	return -1
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}
