package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TopShelfBullard/rails/http/middleware"
	"github.com/TopShelfBullard/rails/logger"
)

type captureLogger struct {
	logger.Logger
	msgs []string
}

func (cl *captureLogger) Info(msg string, _ *logger.LogContext) { cl.msgs = append(cl.msgs, msg) }

func TestLogRequest(t *testing.T) {
	t.Run("Nil-Logger", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com/clients", nil)
		var called bool
		h := http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) { called = true })

		// Act
		middleware.LogRequest(nil)(h).ServeHTTP(w, r)

		// Assert
		require.True(t, called)
	})

	t.Run("Logs-Method-And-URI", func(t *testing.T) {
		// Arrange
		cl := new(captureLogger)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com/clients?param=true", nil)

		// Act
		middleware.LogRequest(cl)(NoopHandler()).ServeHTTP(w, r)

		// Assert
		require.Len(t, cl.msgs, 1)
		require.Equal(t, "GET /clients?param=true", cl.msgs[0])
	})

	t.Run("Scrubs-Password", func(t *testing.T) {
		// Arrange
		cl := new(captureLogger)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "https://example.com/login?password=hunter2", nil)

		// Act
		middleware.LogRequest(cl)(NoopHandler()).ServeHTTP(w, r)

		// Assert
		require.Len(t, cl.msgs, 1)
		require.NotContains(t, cl.msgs[0], "hunter2")
		require.Contains(t, cl.msgs[0], "password=xxxxxxx")
	})

	t.Run("Includes-IP-Address", func(t *testing.T) {
		// Arrange
		cl := new(captureLogger)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "https://example.com/clients", nil)
		r.Header.Set("X-Forwarded-For", "1.1.1.1")

		// Act
		middleware.Chain(
			middleware.LogRequest(cl)(NoopHandler()),
			middleware.InjectIPAddress(),
		).ServeHTTP(w, r)

		// Assert
		require.Len(t, cl.msgs, 1)
		require.True(t, strings.HasPrefix(cl.msgs[0], "1.1.1.1 "), cl.msgs[0])
	})
}

