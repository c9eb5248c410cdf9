package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	rails "github.com/TopShelfBullard/rails"
)

// RequestID adds a uuid to the request context under rails.RequestIDKey.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), rails.RequestIDKey, uuid.NewString())
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
