package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	rails "github.com/TopShelfBullard/rails"
	"github.com/TopShelfBullard/rails/http/params"
	"github.com/TopShelfBullard/rails/http/render"
	"github.com/TopShelfBullard/rails/http/routes"
	"github.com/TopShelfBullard/rails/http/session"
	"github.com/TopShelfBullard/rails/http/template"
	"github.com/TopShelfBullard/rails/http/urls"
	"github.com/TopShelfBullard/rails/logger"
)

// DefaultAction is the action name dispatched when the request's
// parameters name none.
const DefaultAction = "index"

// A Dispatcher turns recognized requests into exactly one committed
// outcome by executing the named action on the named handler.
//
// A single Dispatcher serves all requests; per-request state lives on
// the Context it builds for each one.
type Dispatcher struct {
	registry *Registry
	engine   template.Renderer
	resolver routes.Resolver
	sessions session.Storer
	logger   logger.Logger
	env      rails.Environment

	exposeFrameworkLocals bool
}

// A DispatcherOptFn applies functional options to a *Dispatcher when
// constructing it.
type DispatcherOptFn func(*Dispatcher)

// WithSessionStore sets the Storer supplying each request's session handle.
func WithSessionStore(st session.Storer) DispatcherOptFn {
	return func(d *Dispatcher) {
		d.sessions = st
	}
}

// WithLogger sets the Logger actions and the Dispatcher log through.
func WithLogger(l logger.Logger) DispatcherOptFn {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithEnv sets the Environment the Dispatcher reports to templates.
func WithEnv(env rails.Environment) DispatcherOptFn {
	return func(d *Dispatcher) {
		d.env = env
	}
}

// ExposeFrameworkLocals additionally binds a small fixed set of
// framework configuration values on every render.
func ExposeFrameworkLocals() DispatcherOptFn {
	return func(d *Dispatcher) {
		d.exposeFrameworkLocals = true
	}
}

// NewDispatcher constructs a *Dispatcher over the given handler
// registry, template engine, and route resolver.
func NewDispatcher(registry *Registry, engine template.Renderer, resolver routes.Resolver, opts ...DispatcherOptFn) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		engine:   engine,
		resolver: resolver,
		env:      rails.Development,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.NewLogger()
	}

	return d
}

// Process recognizes r, executes the named action, and finalizes the
// one outcome into a *Response.
//
// Failures propagate unchanged: routes.ErrNoMatchingRoute when no
// route recognizes the path, ErrUnknownAction when neither an action
// nor a public conventional template resolves, render.ErrMissingTemplate
// and render.ErrAlreadyPerformed from inside the action.
func (d *Dispatcher) Process(r *http.Request) (*Response, error) {
	state, err := d.resolver.Recognize(r.URL.Path)
	if err != nil {
		return nil, err
	}

	d.fill(state, r)

	handlerName := state.Bag.Leaf("controller")
	handler, ok := d.registry.Handler(handlerName)
	if !ok {
		return nil, fmt.Errorf("%w: no handler %q", ErrUnknownAction, handlerName)
	}

	actionName := state.Bag.Leaf("action")
	if actionName == "" {
		actionName = DefaultAction
	}

	ctx := d.newContext(handler, actionName, state, r)

	if err := d.perform(ctx, handler, actionName); err != nil {
		return nil, err
	}

	return finalize(ctx), nil
}

// Handle adapts Process to an http.HandlerFunc, translating the error
// taxonomy into status codes at the transport boundary.
func (d *Dispatcher) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := d.Process(r)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrUnknownAction) || errors.Is(err, routes.ErrNoMatchingRoute) {
			code = http.StatusNotFound
		}

		d.logger.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
		http.Error(w, http.StatusText(code), code)
		return
	}

	if resp.RedirectedTo != "" {
		// session cookies must survive the redirect
		for k, vals := range resp.Header {
			if k == "Location" {
				continue
			}

			for _, v := range vals {
				w.Header().Add(k, v)
			}
		}

		http.Redirect(w, r, resp.RedirectedTo, resp.Code())
		return
	}

	if err := resp.Write(w); err != nil {
		d.logger.Error(err.Error(), &logger.LogContext{Error: err, Request: r})
	}
}

// perform runs the action, or falls back to rendering a public
// conventional template when no action resolves.
func (d *Dispatcher) perform(ctx *Context, handler *Handler, actionName string) error {
	conventional := handler.name + "/" + actionName

	act, ok := handler.Action(actionName)
	if !ok {
		if d.engine.FileExists(conventional) && d.engine.FilePublic(conventional) {
			return ctx.Render(render.Template(conventional))
		}

		return fmt.Errorf("%w: %q on handler %q", ErrUnknownAction, actionName, handler.name)
	}

	if err := act(ctx); err != nil {
		return err
	}

	// the action takes precedence; only an action that produced no
	// outcome falls through to the implicit render
	if ctx.Gate.HasPerformed() {
		return nil
	}

	return ctx.Render(render.Template(conventional))
}

// fill completes the RequestState with the request's parameters and origin.
func (d *Dispatcher) fill(state *routes.RequestState, r *http.Request) {
	_ = r.ParseForm()

	bag := params.ParseValues(r.Form)
	for _, slot := range state.Slots() {
		bag.Set(slot.Name, slot.Value)
	}

	// defaults naming no segment are constants of the matched route
	for name, def := range state.Route().Defaults() {
		if _, ok := bag.Get(name); !ok {
			bag.Set(name, def)
		}
	}

	state.Bag = bag
	state.Host = r.Host
	state.Scheme = "http"
	if r.TLS != nil {
		state.Scheme = "https"
	}
}

func (d *Dispatcher) newContext(handler *Handler, actionName string, state *routes.RequestState, r *http.Request) *Context {
	var defaults urls.DefaultOptioner
	if handler.urlDefaults != nil {
		defaults = handler
	}

	composer := urls.NewComposer(d.resolver, state, defaults)

	var sess session.Session
	if d.sessions != nil {
		sess, _ = d.sessions.GetSession(r)
	}

	// downstream code reached through the request alone can still find
	// the routing state and session
	rctx := context.WithValue(r.Context(), rails.CurrentRouteKey, state)
	rctx = context.WithValue(rctx, rails.SessionKey, sess)
	r = r.WithContext(rctx)

	return &Context{
		Request:   r,
		Params:    state.Bag,
		State:     state,
		Gate:      render.NewGate(d.engine, composer, state),
		URLs:      composer,
		Session:   sess,
		Logger:    d.logger,
		handler:   handler,
		action:    actionName,
		env:       d.env,
		exposeEnv: d.exposeFrameworkLocals,
	}
}

// finalize normalizes the committed Outcome into a *Response,
// carrying over any headers written mid-action, e.g. session cookies.
func finalize(ctx *Context) *Response {
	resp := &Response{Header: make(http.Header)}
	for k, vals := range ctx.hw.h {
		for _, v := range vals {
			resp.Header.Add(k, v)
		}
	}

	o := ctx.Gate.Outcome()
	if target, ok := o.Redirected(); ok {
		resp.StatusLine = "302 Found"
		resp.RedirectedTo = target
		resp.Header.Set("Location", target)
		return resp
	}

	body, status, _ := o.Rendered()
	resp.StatusLine = status
	resp.Body = body
	resp.Header.Set("Content-Type", "text/html; charset=utf-8")
	return resp
}
