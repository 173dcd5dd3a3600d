package tenant

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/backoffice/pkg/logger"
)

type (
	tenantKey struct{}
	scopeKey  struct{}
)

// WithTenant stores the resolved company in ctx.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantKey{}, t)
}

// FromContext returns the company stored by Middleware.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(tenantKey{}).(*Tenant)
	return t, ok && t != nil
}

// MustFromContext panics if no company is in ctx. Use only behind Middleware.
func MustFromContext(ctx context.Context) *Tenant {
	t, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return t
}

// WithKey stores the tenant key taken from the route.
func WithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, scopeKey{}, key)
}

// KeyFromContext returns the tenant key stored by Scope.
func KeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(scopeKey{}).(string)
	return key, ok && key != ""
}

// LoggerExtractor adds tenant_id to log records of scoped requests.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if t, ok := FromContext(ctx); ok {
			return slog.String("tenant_id", t.Key()), true
		}
		if key, ok := KeyFromContext(ctx); ok {
			return slog.String("tenant_id", key), true
		}
		return slog.Attr{}, false
	}
}
