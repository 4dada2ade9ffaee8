// Package requestid correlates log lines across one unit of work: an HTTP
// request on the admin API, or one chat command invocation on the bot.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// New generates a random UUID v4 request ID.
func New() string {
	return uuid.NewString()
}

// NewContext returns ctx carrying a freshly generated request ID.
func NewContext(ctx context.Context) context.Context {
	return WithRequestID(ctx, New())
}

// WithRequestID returns a copy of ctx with the request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the request ID from ctx. Returns "" if absent.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
