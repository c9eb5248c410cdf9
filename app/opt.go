package app

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"

	rails "github.com/TopShelfBullard/rails"
	"github.com/TopShelfBullard/rails/http/dispatch"
	"github.com/TopShelfBullard/rails/http/middleware"
	"github.com/TopShelfBullard/rails/http/routes"
	"github.com/TopShelfBullard/rails/http/session"
	"github.com/TopShelfBullard/rails/http/template"
	"github.com/TopShelfBullard/rails/logger"
)

// An AppOption configures an *App either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some AppOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *App is updated with the enclosed value.
//
// The default session store is an example of the second.
// It can only be built once every option has had its chance to set the Environment.
type AppOption func(a *App) (OptFollowup, error)
type OptFollowup func() error

// WithContext exposes the provided context.Context to the app.
func WithContext(ctx context.Context) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.ctx = ctx
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid Environment,
// or, reads from the ENVIRONMENT environment variable a valid Environment.
//
// If both fail, the default Environment is set to Development.
func WithEnv(envVar string) AppOption {
	e := rails.Environment(envVar)
	if err := e.Valid(); err == nil {
		return func(a *App) (OptFollowup, error) {
			a.env = e
			return nil, nil
		}
	}

	return func(a *App) (OptFollowup, error) {
		a.env = rails.EnvVarOrEnv(environmentEnvVar, rails.Development)
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the app.
func WithLogger(l logger.Logger) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.l = l
		return nil, nil
	}
}

// WithBaseURL parses the provided string as the app's base URL.
func WithBaseURL(raw string) AppOption {
	return func(a *App) (OptFollowup, error) {
		u, err := url.ParseRequestURI(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %s", raw, err)
		}

		a.url = u
		return nil, nil
	}
}

// WithHandlers exposes the provided *dispatch.Registry to the app.
func WithHandlers(registry *dispatch.Registry) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.registry = registry
		return nil, nil
	}
}

// WithRoutes exposes the provided *routes.Table to the app.
func WithRoutes(table *routes.Table) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.resolver = table
		return nil, nil
	}
}

// WithTemplates constructs a template.Engine over the provided fs.FS
// and exposes it to the app.
func WithTemplates(filesys fs.FS) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.engine = template.NewEngine(template.WithFS(filesys))
		return nil, nil
	}
}

// WithTemplateEngine exposes the provided template.Renderer to the app.
func WithTemplateEngine(engine template.Renderer) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.engine = engine
		return nil, nil
	}
}

// WithSessionStore exposes the session.Storer to the app.
func WithSessionStore(store session.Storer) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.sessions = store
		return nil, nil
	}
}

// WithServer exposes the *http.Server to the app.
func WithServer(s *http.Server) AppOption {
	return func(a *App) (OptFollowup, error) {
		old := a.srv
		a.srv = s

		if old != nil {
			a.srv.Handler = old.Handler
		}

		return nil, nil
	}
}

// WithMiddlewares appends the provided middleware.Adapters to those
// the app applies on every request.
func WithMiddlewares(mws ...middleware.Adapter) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.mws = append(a.mws, mws...)
		return nil, nil
	}
}

// WithDispatchOptions forwards the provided options to the app's Dispatcher.
func WithDispatchOptions(opts ...dispatch.DispatcherOptFn) AppOption {
	return func(a *App) (OptFollowup, error) {
		a.dopts = append(a.dopts, opts...)
		return nil, nil
	}
}
