package dispatch

import (
	"net/http"

	rails "github.com/TopShelfBullard/rails"
	"github.com/TopShelfBullard/rails/http/params"
	"github.com/TopShelfBullard/rails/http/render"
	"github.com/TopShelfBullard/rails/http/routes"
	"github.com/TopShelfBullard/rails/http/session"
	"github.com/TopShelfBullard/rails/http/urls"
	"github.com/TopShelfBullard/rails/logger"
)

// reservedLocals names framework-internal assigns never exposed as
// template bindings.
var reservedLocals = map[string]struct{}{
	"gate":    {},
	"params":  {},
	"request": {},
	"session": {},
	"state":   {},
	"urls":    {},
}

// A Context carries everything one action execution may touch:
// the request, its parameters and routing state, the render gate,
// the URL composer, and the session handle.
//
// A Context is owned by a single in-flight request and must not be
// retained past the action's return.
type Context struct {
	Request *http.Request
	Params  *params.Bag
	State   *routes.RequestState
	Gate    *render.Gate
	URLs    *urls.Composer
	Session session.Session
	Logger  logger.Logger

	handler   *Handler
	action    string
	env       rails.Environment
	exposeEnv bool
	assigns   map[string]any
	hw        headerWriter
}

// headerWriter collects headers written by collaborators needing an
// http.ResponseWriter before the Response exists, notably session
// saves setting cookies.
type headerWriter struct {
	h http.Header
}

func (hw *headerWriter) Header() http.Header {
	if hw.h == nil {
		hw.h = make(http.Header)
	}

	return hw.h
}

func (hw *headerWriter) Write(b []byte) (int, error) { return len(b), nil }
func (hw *headerWriter) WriteHeader(int)             {}

// HandlerName returns the name of the handler the action runs on.
func (c *Context) HandlerName() string { return c.handler.name }

// ActionName returns the name of the action being executed.
func (c *Context) ActionName() string { return c.action }

// Assign stores a value to be bound as template data on the next render.
func (c *Context) Assign(key string, val any) {
	if c.assigns == nil {
		c.assigns = make(map[string]any)
	}

	c.assigns[key] = val
}

// Locals collects the action's assigns minus framework-reserved names.
// When the dispatcher exposes framework locals, a small fixed set of
// configuration values rides along.
func (c *Context) Locals() map[string]any {
	locals := make(map[string]any, len(c.assigns)+3)
	for k, v := range c.assigns {
		if _, reserved := reservedLocals[k]; reserved {
			continue
		}

		locals[k] = v
	}

	if c.exposeEnv {
		locals["Env"] = c.env.String()
		locals["HandlerName"] = c.handler.name
		locals["ActionName"] = c.action
	}

	return locals
}

// Render commits a rendered outcome through the gate,
// binding the Context's locals beneath any explicit Locals option.
//
// With no intent option, Render falls back to the conventional
// "handler/action" template; rendering nothing takes an explicit
// render.Nothing.
func (c *Context) Render(opts ...render.Opt) error {
	return c.Gate.Render(append(c.baseOpts(), opts...)...)
}

// RenderToString resolves a render intent to a string without
// committing an outcome. The no-intent default matches Render.
func (c *Context) RenderToString(opts ...render.Opt) (string, error) {
	return c.Gate.RenderToString(append(c.baseOpts(), opts...)...)
}

// baseOpts binds the Context's locals and the conventional template;
// explicit options supplied by the action overwrite both.
func (c *Context) baseOpts() []render.Opt {
	return []render.Opt{
		render.Locals(c.Locals()),
		render.Template(c.handler.name + "/" + c.action),
	}
}

// RedirectTo commits a redirected outcome through the gate.
func (c *Context) RedirectTo(target any) error {
	return c.Gate.RedirectTo(target)
}

// URLFor composes a URL from the current request's routing state.
func (c *Context) URLFor(opts any) (string, error) {
	return c.URLs.Resolve(opts)
}

// Flashes pops the session's flash messages.
func (c *Context) Flashes() []session.Flash {
	return c.Session.Flashes(&c.hw, c.Request)
}

// SetFlash stores a flash message in the session.
func (c *Context) SetFlash(f session.Flash) error {
	return c.Session.SetFlash(&c.hw, c.Request, f)
}

// SetSession stores a value in the session.
func (c *Context) SetSession(key string, val any) error {
	return c.Session.Set(&c.hw, c.Request, key, val)
}
