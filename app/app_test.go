package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	rails "github.com/TopShelfBullard/rails"
	"github.com/TopShelfBullard/rails/app"
	"github.com/TopShelfBullard/rails/http/dispatch"
	"github.com/TopShelfBullard/rails/http/routes"
	"github.com/TopShelfBullard/rails/http/session"
	"github.com/TopShelfBullard/rails/http/template"
)

func testTemplates() fstest.MapFS {
	return fstest.MapFS{
		"project/index" + template.Ext: &fstest.MapFile{Data: []byte("all projects")},
		"project/dash" + template.Ext:  &fstest.MapFile{Data: []byte("dash for {{.client}}")},
	}
}

func testRegistry(t *testing.T) *dispatch.Registry {
	t.Helper()

	registry := dispatch.NewRegistry()
	_, err := registry.Register("project", map[string]dispatch.Action{
		"dash": func(ctx *dispatch.Context) error {
			ctx.Assign("client", "37signals")
			return ctx.Render()
		},
	})
	require.NoError(t, err)

	return registry
}

func TestNew(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Act
		a, err := app.New(app.WithEnv(rails.Testing.String()))

		// Assert
		require.NoError(t, err)
		require.Equal(t, rails.Testing, a.Env())
		require.NotNil(t, a.Logger())
		require.NotNil(t, a.Router())
		require.NotNil(t, a.SessionStore())
		require.Equal(t, "http://localhost:3000/", a.URL().String())
	})

	t.Run("Bad-Base-URL", func(t *testing.T) {
		// Act
		_, err := app.New(app.WithBaseURL("not a url"))

		// Assert
		require.ErrorIs(t, err, rails.ErrBadConfig)
	})

	t.Run("Bad-Session-Key", func(t *testing.T) {
		// Arrange
		t.Setenv(app.SessionAuthKeyEnvVar, "not-hex!")

		// Act
		_, err := app.New(app.WithEnv(rails.Testing.String()))

		// Assert
		require.ErrorIs(t, err, rails.ErrBadConfig)
	})

	t.Run("Missing-Session-Key-In-Production", func(t *testing.T) {
		// Act
		_, err := app.New(app.WithEnv(rails.Production.String()))

		// Assert
		require.ErrorIs(t, err, rails.ErrBadConfig)
	})

	t.Run("With-Session-Store", func(t *testing.T) {
		// Arrange
		store := session.NewStore("test-session", []byte("test-key"))

		// Act
		a, err := app.New(app.WithEnv(rails.Testing.String()), app.WithSessionStore(store))

		// Assert
		require.NoError(t, err)
		require.Equal(t, store, a.SessionStore())
	})
}

func TestAppServesDispatchedRequests(t *testing.T) {
	// Arrange
	a, err := app.New(
		app.WithEnv(rails.Testing.String()),
		app.WithHandlers(testRegistry(t)),
		app.WithTemplates(testTemplates()),
	)
	require.NoError(t, err)

	tcs := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{"Action", "/project/dash", http.StatusOK, "dash for 37signals"},
		{"Default-Action", "/project", http.StatusOK, "all projects"},
		{"Unknown-Handler", "/missing/thing", http.StatusNotFound, ""},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, tc.path, nil)

			// Act
			a.Router().ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				require.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestAppCustomRoutes(t *testing.T) {
	// Arrange
	pretty, err := routes.NewRoute("/projects/:client/:action", map[string]string{"controller": "project", "action": "dash"})
	require.NoError(t, err)

	a, err := app.New(
		app.WithEnv(rails.Testing.String()),
		app.WithHandlers(testRegistry(t)),
		app.WithTemplates(testTemplates()),
		app.WithRoutes(routes.NewTable(pretty)),
	)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/projects/basecamp", nil)

	// Act
	a.Router().ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "dash for 37signals", w.Body.String())
}
