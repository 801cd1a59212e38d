// Package middleware contains the cross-cutting request pipeline: the
// correlation-ID layer and the request-context logging middleware that
// wraps every route.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/avolkov/stash-api/internal/api/shared"
)

// RequestID propagates a correlation ID through the request. An inbound
// x-request-id header is honored so callers can trace a request across
// services; otherwise a fresh UUID is generated. The ID is stored in the
// request context and echoed as a response header.
//
// Apply this middleware before any logging middleware so every log line
// of the request carries the ID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(shared.RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		ctx := shared.SetRequestID(r.Context(), id)
		w.Header().Set(shared.RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
