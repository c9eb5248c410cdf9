package app

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/joho/godotenv/autoload"

	rails "github.com/TopShelfBullard/rails"
	"github.com/TopShelfBullard/rails/http/dispatch"
	"github.com/TopShelfBullard/rails/http/middleware"
	"github.com/TopShelfBullard/rails/http/routes"
	"github.com/TopShelfBullard/rails/http/session"
	"github.com/TopShelfBullard/rails/http/template"
	"github.com/TopShelfBullard/rails/logger"
)

// An App manages and exposes all components of a rails app to one another.
type App struct {
	ctx      context.Context
	d        *dispatch.Dispatcher
	dopts    []dispatch.DispatcherOptFn
	engine   template.Renderer
	env      rails.Environment
	l        logger.Logger
	mws      []middleware.Adapter
	registry *dispatch.Registry
	resolver routes.Resolver
	router   *mux.Router
	sessions session.Storer
	srv      *http.Server
	url      *url.URL
}

// New constructs an App from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...AppOption) (*App, error) {
	a := new(App)
	followups := make([]OptFollowup, 0)

	// NOTE: calling an option configures the *App under construction.
	// Some options require data from other options.
	// These options, therefore, must delay configuring the *App
	// until either (1) user supplied AppOptions or (2) default AppOptions
	// configure the *App first.
	// They return an OptFollowup to be called after the initial set of options are run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", rails.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", rails.ErrBadConfig, err)
		}
	}

	dopts := append([]dispatch.DispatcherOptFn{
		dispatch.WithEnv(a.env),
		dispatch.WithLogger(a.l),
		dispatch.WithSessionStore(a.sessions),
	}, a.dopts...)
	a.d = dispatch.NewDispatcher(a.registry, a.engine, a.resolver, dopts...)

	mws := append([]middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(a.l),
	}, a.mws...)

	a.router = mux.NewRouter()
	a.router.PathPrefix("/").Handler(middleware.Chain(http.HandlerFunc(a.d.Handle), mws...))
	a.srv.Handler = a.router

	return a, nil
}

func (a *App) Dispatcher() *dispatch.Dispatcher   { return a.d }
func (a *App) Env() rails.Environment             { return a.env }
func (a *App) Logger() logger.Logger              { return a.l }
func (a *App) Router() *mux.Router                { return a.router }
func (a *App) SessionStore() session.Storer       { return a.sessions }
func (a *App) URL() *url.URL                      { return a.url }

// Run begins the web server.
//
// These, and (*App).Shutdown, stop Run:
//
// - os.Interrupt
// - os.Kill
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (a *App) Run() error {
	var cancel context.CancelFunc
	a.ctx, cancel = context.WithCancel(a.ctx)

	ch := make(chan os.Signal, 1)
	signal.Notify(
		ch,
		os.Interrupt,
		os.Kill,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)

	go func() {
		s := <-ch
		a.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
		cancel()
	}()

	go func() {
		a.l.Info(fmt.Sprintf("running web server at %s", a.srv.Addr), nil)
		if err := a.srv.ListenAndServe(); err != http.ErrServerClosed {
			err = fmt.Errorf("could not listen: %w", err)
			a.l.Error(err.Error(), nil)
		}
	}()

	<-a.ctx.Done()
	return a.Shutdown()
}

// Shutdown shutdowns the web server.
func (a *App) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.l.Info("shutting down web server", nil)
	err := a.srv.Shutdown(shutdownCtx)
	if err == http.ErrServerClosed {
		a.l.Info("web server shutdown successfully", nil)
		return nil
	}

	if err != nil {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	a.l.Info("web server shutdown successfully", nil)
	return nil
}
