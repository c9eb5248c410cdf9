package dispatch

import (
	"fmt"
	"sync"
	"sync/atomic"

	rails "github.com/TopShelfBullard/rails"
	"github.com/TopShelfBullard/rails/http/urls"
)

// An Action is a typed invocation thunk for one named action on a handler.
type Action func(*Context) error

// CatchAll is the marker action name. A handler registering it accepts
// every action name not otherwise resolvable.
const CatchAll = "*"

// reservedActions are framework operation names no handler may expose,
// whatever its registered action table says.
var reservedActions = map[string]struct{}{
	"dispatch":         {},
	"process":          {},
	"redirect_to":      {},
	"render":           {},
	"render_to_string": {},
	"url_for":          {},
}

// A Handler is one registered handler type: its name, its action
// table, and its hidden-action set.
//
// The allowed-action set is computed once, on first use, and cached
// for the life of the process. Concurrent first dispatches are safe;
// all other configuration must finish before serving requests.
type Handler struct {
	name        string
	actions     map[string]Action
	hidden      map[string]struct{}
	urlDefaults func() urls.Options

	buildOnce sync.Once
	built     atomic.Bool
	allowed   map[string]Action
}

// A HandlerOptFn applies functional options to a *Handler at registration.
type HandlerOptFn func(*Handler)

// WithHiddenActions extends the handler's hidden-action set.
func WithHiddenActions(names ...string) HandlerOptFn {
	return func(h *Handler) {
		for _, n := range names {
			h.hidden[n] = struct{}{}
		}
	}
}

// WithDefaultURLOptions sets the handler's default-options hook,
// merged beneath explicit options on every URL composition.
func WithDefaultURLOptions(fn func() urls.Options) HandlerOptFn {
	return func(h *Handler) {
		h.urlDefaults = fn
	}
}

// Name returns the handler's registered name, a path like "project"
// or "admin/projects".
func (h *Handler) Name() string { return h.name }

// HideActions extends the hidden-action set after registration.
//
// The allowed-action set is cached on first dispatch; extending the
// hidden set after that fails with rails.ErrBadConfig.
func (h *Handler) HideActions(names ...string) error {
	if h.built.Load() {
		return fmt.Errorf("%w: action set for %q already computed", rails.ErrBadConfig, h.name)
	}

	for _, n := range names {
		h.hidden[n] = struct{}{}
	}

	return nil
}

// Action resolves name against the handler's allowed set,
// falling back to the catch-all action when one is registered.
func (h *Handler) Action(name string) (Action, bool) {
	allowed := h.allowedActions()

	if a, ok := allowed[name]; ok {
		return a, true
	}

	if a, ok := allowed[CatchAll]; ok {
		return a, true
	}

	return nil, false
}

// DefaultURLOptions implements urls.DefaultOptioner when the handler
// registered a hook; otherwise it supplies nothing.
func (h *Handler) DefaultURLOptions() urls.Options {
	if h.urlDefaults == nil {
		return nil
	}

	return h.urlDefaults()
}

// allowedActions computes the callable action set:
// the registered table minus hidden and reserved names.
//
// The set is built exactly once; concurrent first dispatches block on
// the build instead of racing it.
func (h *Handler) allowedActions() map[string]Action {
	h.buildOnce.Do(func() {
		h.allowed = make(map[string]Action, len(h.actions))
		for name, a := range h.actions {
			if _, ok := reservedActions[name]; ok {
				continue
			}

			if _, ok := h.hidden[name]; ok {
				continue
			}

			h.allowed[name] = a
		}

		h.built.Store(true)
	})

	return h.allowed
}

// A Registry holds every registered Handler, keyed by name.
//
// Register handlers during application setup only; the Registry is
// read without locking while serving requests.
type Registry struct {
	handlers map[string]*Handler
}

// NewRegistry constructs an empty *Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]*Handler)}
}

// Register adds a Handler under name with the given action table.
// Registering the same name twice fails with rails.ErrBadConfig.
func (r *Registry) Register(name string, actions map[string]Action, opts ...HandlerOptFn) (*Handler, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: handler name cannot be empty", rails.ErrBadConfig)
	}

	if _, ok := r.handlers[name]; ok {
		return nil, fmt.Errorf("%w: handler %q already registered", rails.ErrBadConfig, name)
	}

	h := &Handler{
		name:    name,
		actions: make(map[string]Action, len(actions)),
		hidden:  make(map[string]struct{}),
	}
	for n, a := range actions {
		h.actions[n] = a
	}
	for _, opt := range opts {
		opt(h)
	}

	r.handlers[name] = h
	return h, nil
}

// Handler retrieves the Handler registered under name.
func (r *Registry) Handler(name string) (*Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}
