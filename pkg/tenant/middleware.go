package tenant

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/backoffice/pkg/logger"
)

// Middleware resolves the company for every request and stores it in the
// request context. Requests without a tenant key are rejected with
// ErrMissingTenantKey unless their path is listed in WithSkipPaths.
func Middleware(resolver Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:         NewInMemoryCache(DefaultCacheSize),
		cacheTTL:      5 * time.Minute,
		errorHandler:  DefaultErrorHandler,
		requireActive: true,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			identifier, err := resolver.Resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if identifier == "" {
				cfg.errorHandler(w, r, ErrMissingTenantKey)
				return
			}

			t, ok := cfg.cache.Get(r.Context(), identifier)
			if !ok {
				t, err = provider.GetByIdentifier(r.Context(), identifier)
				if err != nil {
					if !errors.Is(err, ErrTenantNotFound) {
						cfg.logger.ErrorContext(r.Context(), "failed to load tenant",
							slog.String("identifier", identifier),
							logger.Error(err),
						)
					}
					cfg.errorHandler(w, r, err)
					return
				}
				cfg.cache.Set(r.Context(), identifier, t, cfg.cacheTTL)
			}

			if cfg.requireActive && !t.Active {
				cfg.errorHandler(w, r, ErrInactiveTenant)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// RequireTenant rejects requests that reach it without a company in context.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = DefaultErrorHandler
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
