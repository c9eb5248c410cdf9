package urls

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/TopShelfBullard/rails/http/routes"
)

// Options is a parameter mapping passed to Resolve. A nil value for a
// key explicitly clears the matching route slot; a string sets it.
type Options map[string]any

// A MethodRef defers URL resolution to a handler operation: invoking
// it returns the next thing to resolve, recursively.
type MethodRef func() any

// The DefaultOptioner hook lets a handler supply default options
// merged beneath every caller's explicit options.
type DefaultOptioner interface {
	DefaultURLOptions() Options
}

// extras are the recognized non-parameter options,
// stripped before delegating to the route Resolver.
type extras struct {
	Anchor        string `mapstructure:"anchor"`
	OnlyPath      bool   `mapstructure:"only_path"`
	TrailingSlash bool   `mapstructure:"trailing_slash"`
	Host          string `mapstructure:"host"`
	Protocol      string `mapstructure:"protocol"`
}

var extraKeys = []string{"anchor", "only_path", "trailing_slash", "host", "protocol"}

// A Composer resolves url_for-style arguments into URL strings
// against the current request's routing state.
//
// A Composer is owned by a single in-flight request.
type Composer struct {
	resolver routes.Resolver
	state    *routes.RequestState
	defaults DefaultOptioner
}

// NewComposer constructs a *Composer for one request. state may be nil
// when composing outside a matched route; defaults may be nil when the
// handler does not override the default-options hook.
func NewComposer(resolver routes.Resolver, state *routes.RequestState, defaults DefaultOptioner) *Composer {
	return &Composer{resolver: resolver, state: state, defaults: defaults}
}

// Resolve turns opts into a URL string.
//
// A string passes through unchanged. A MethodRef is invoked and its
// result resolved recursively. An Options mapping is merged over the
// handler's default options and run through the positional
// default-inheritance walk before the route Resolver generates a path.
//
// A route Resolver failure surfaces unchanged, wrapping
// [routes.ErrNoMatchingRoute].
func (c *Composer) Resolve(opts any) (string, error) {
	switch t := opts.(type) {
	case string:
		return t, nil
	case MethodRef:
		return c.Resolve(t())
	case func() any:
		return c.Resolve(t())
	case Options:
		return c.resolveOptions(t)
	case map[string]any:
		return c.resolveOptions(Options(t))
	case map[string]string:
		merged := make(Options, len(t))
		for k, v := range t {
			merged[k] = v
		}
		return c.resolveOptions(merged)
	default:
		return "", fmt.Errorf("cannot compose a URL from %T", opts)
	}
}

func (c *Composer) resolveOptions(explicit Options) (string, error) {
	merged := c.mergeDefaults(explicit)

	var ex extras
	if err := mapstructure.Decode(map[string]any(merged), &ex); err != nil {
		return "", fmt.Errorf("bad url options: %w", err)
	}
	for _, k := range extraKeys {
		delete(merged, k)
	}

	values, err := c.inherit(merged)
	if err != nil {
		return "", err
	}

	path, err := c.resolver.Generate(values)
	if err != nil {
		return "", err
	}

	if ex.TrailingSlash && !strings.HasSuffix(path, "/") {
		path += "/"
	}

	if ex.Anchor != "" {
		path += "#" + ex.Anchor
	}

	return c.absolutize(path, ex), nil
}

// mergeDefaults fills gaps in explicit with the handler's default
// options. Explicit keys always win, including explicit nils.
func (c *Composer) mergeDefaults(explicit Options) Options {
	merged := make(Options, len(explicit))
	for k, v := range explicit {
		merged[k] = v
	}

	if c.defaults == nil {
		return merged
	}

	for k, v := range c.defaults.DefaultURLOptions() {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}

	return merged
}

// inherit performs the positional default-inheritance walk over the
// current route's slots, then folds in any option keys that name no
// slot so the Resolver can reject or place them.
//
// An explicitly set slot always takes the caller's value, even one that
// differs from the current request's. An unset slot inherits the
// current request's value until a prior slot could not resolve to one,
// which only a cleared slot (explicit nil) causes; from that point on,
// unset slots fall back to the route's declared defaults or are omitted.
func (c *Composer) inherit(merged Options) (map[string]string, error) {
	values := make(map[string]string, len(merged))
	consumed := make(map[string]struct{}, len(merged))

	var slots []routes.Slot
	if c.state != nil {
		slots = c.state.Slots()
	}

	diverged := false
	for _, slot := range slots {
		v, explicit := merged[slot.Name]
		if explicit {
			consumed[slot.Name] = struct{}{}

			if v == nil {
				// Clearing a slot is maximal divergence: nothing
				// after it can claim to mean what it meant before.
				diverged = true
				continue
			}

			s, err := stringify(slot.Name, v)
			if err != nil {
				return nil, err
			}

			values[slot.Name] = s
			continue
		}

		if diverged {
			// Fall back to the route's declared default by omission.
			continue
		}

		values[slot.Name] = slot.Value
	}

	for k, v := range merged {
		if _, ok := consumed[k]; ok {
			continue
		}

		if v == nil {
			continue
		}

		s, err := stringify(k, v)
		if err != nil {
			return nil, err
		}

		values[k] = s
	}

	return values, nil
}

func (c *Composer) absolutize(path string, ex extras) string {
	if ex.OnlyPath {
		return path
	}

	host := ex.Host
	scheme := ex.Protocol
	if c.state != nil {
		if host == "" {
			host = c.state.Host
		}
		if scheme == "" {
			scheme = c.state.Scheme
		}
	}

	if host == "" {
		return path
	}

	if scheme == "" {
		scheme = "http"
	}

	return scheme + "://" + host + path
}

func stringify(key string, v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	case int:
		return fmt.Sprintf("%d", t), nil
	default:
		return "", fmt.Errorf("url option %q holds unsupported %T", key, v)
	}
}
