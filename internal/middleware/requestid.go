package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/gadgeto/storefront/internal/logger"
)

const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID tags every request with an id for log correlation. An id supplied
// by an upstream proxy is kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request id from the context, or "" if the
// middleware did not run.
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

// RequestLogger returns the global logger annotated with the request id so
// every record emitted while serving one request can be correlated.
func RequestLogger(r *http.Request) *slog.Logger {
	if id := GetRequestID(r); id != "" {
		return logger.Log.With("request_id", id)
	}
	return logger.Log
}
