package app

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	rails "github.com/TopShelfBullard/rails"
	"github.com/TopShelfBullard/rails/http/dispatch"
	"github.com/TopShelfBullard/rails/http/routes"
	"github.com/TopShelfBullard/rails/http/session"
	"github.com/TopShelfBullard/rails/http/template"
	"github.com/TopShelfBullard/rails/logger"
)

const (
	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// App metadata
	AppTitleEnvVar  = "APP_TITLE"
	defaultAppTitle = "rails"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	defaultLogLevel = "INFO"

	// Default HTML template files
	defaultTmplDir = "tmpl"

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar = "SESSION_AUTH_KEY"
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// defaultOpts are applied before the options passed into New;
// the last fills in whatever the caller's options left unset,
// running after all other options as an OptFollowup.
func defaultOpts() []AppOption {
	return []AppOption{
		WithContext(context.Background()),
		WithEnv(""),
		func(a *App) (OptFollowup, error) { return a.fillDefaults, nil },
	}
}

func (a *App) fillDefaults() error {
	if a.l == nil {
		a.l = defaultLogger(a.env)
	}

	if a.url == nil {
		a.url = rails.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL)
	}

	if a.registry == nil {
		a.registry = dispatch.NewRegistry()
	}

	if a.engine == nil {
		a.engine = template.NewEngine(template.WithFS(os.DirFS(defaultTmplDir)))
	}

	if a.resolver == nil {
		table, err := defaultRoutes()
		if err != nil {
			return err
		}

		a.resolver = table
	}

	if a.sessions == nil {
		store, err := defaultSessionStore(a.env, a.l)
		if err != nil {
			return err
		}

		a.sessions = store
	}

	if a.srv == nil {
		a.srv = defaultServer(a.ctx)
	}

	return nil
}

// defaultLogger constructs the logger.Logger used when no WithLogger option is supplied.
// Confer logger.NewLogger for how SENTRY_DSN upgrades it to a SentryLogger.
func defaultLogger(env rails.Environment) logger.Logger {
	return logger.NewLogger(
		logger.WithEnv(env.String()),
		logger.WithLevel(logger.NewLogLevel(rails.EnvVarOrString(logLevelEnvVar, defaultLogLevel))),
	)
}

// defaultRoutes builds the conventional catch-all route table.
func defaultRoutes() (*routes.Table, error) {
	r, err := routes.NewRoute("/:controller/:action/:id", map[string]string{"action": "index"})
	if err != nil {
		return nil, err
	}

	return routes.NewTable(r), nil
}

// defaultSessionStore constructs a session.Storer for storing session data.
//
// defaultSessionStore relies on two env vars:
//   - APP_TITLE
//   - SESSION_AUTH_KEY
//
// SESSION_AUTH_KEY must be a valid hex encoded value; cf. [encoding/hex].
// Outside Production, an unset key falls back to a throwaway generated one,
// invalidating existing sessions on every boot.
func defaultSessionStore(env rails.Environment, l logger.Logger) (session.Storer, error) {
	appName := strings.ToLower(rails.EnvVarOrString(AppTitleEnvVar, defaultAppTitle))
	appName = regexp.MustCompile(`[,':]`).ReplaceAllString(appName, "")
	appName = regexp.MustCompile(`\s`).ReplaceAllString(appName, "-")

	raw := os.Getenv(SessionAuthKeyEnvVar)
	if raw == "" {
		if env.IsProduction() {
			return nil, fmt.Errorf("%s must be set in %s", SessionAuthKeyEnvVar, env)
		}

		l.Warn(fmt.Sprintf("%s not set, sessions will not survive a restart", SessionAuthKeyEnvVar), nil)
		return session.NewStore(appName+"-session", []byte(uuid.NewString())), nil
	}

	authKey, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be hex encoded: %s", SessionAuthKeyEnvVar, err)
	}

	return session.NewStore(appName+"-session", authKey), nil
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context) *http.Server {
	port := rails.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  rails.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  rails.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: rails.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
