// Package session resolves caller sessions to their logged enterprise.
package session

import (
	"context"
	"net/http"

	"github.com/RassulYunussov/msclient/common"
	"github.com/google/uuid"
)

type requestIDKey struct{}

// WithRequestID stores the session correlation id in the context
func WithRequestID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns uuid.Nil when the context carries no correlation id
func RequestIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(requestIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// ParseRequestID reads the correlation id header, malformed values resolve to uuid.Nil
func ParseRequestID(h http.Header) uuid.UUID {
	id, err := uuid.Parse(h.Get(common.SessionRequestHeader))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Middleware propagates the correlation id of an inbound request into its context,
// so outgoing microservice calls made while serving it are attributed to the same session.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := ParseRequestID(r.Header); id != uuid.Nil {
			r = r.WithContext(WithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
