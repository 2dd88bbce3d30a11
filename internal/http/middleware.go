package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/brianxchen/badminton-queue/internal/processor"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const callerKey contextKey = "caller"

// loggingMiddleware logs every incoming request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		next.ServeHTTP(w, r)
	})
}

// bearerToken pulls the token out of the Authorization header, falling back
// to the "token" query parameter for websocket clients that cannot set
// headers.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// authMiddleware verifies the session token and stores the resolved caller
// in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "missing token")
			return
		}
		id, err := s.Auth.Verify(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		caller := processor.Caller{Username: id.Username, IsAdmin: id.IsAdmin}
		ctx := context.WithValue(r.Context(), callerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminMiddleware rejects non-admin callers. It must run after
// authMiddleware.
func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromContext(r)
		if !caller.IsAdmin {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// callerFromContext retrieves the caller stored by authMiddleware. Handlers
// behind the middleware can rely on it being present.
func callerFromContext(r *http.Request) processor.Caller {
	caller, _ := r.Context().Value(callerKey).(processor.Caller)
	return caller
}
