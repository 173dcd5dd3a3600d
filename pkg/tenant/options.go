package tenant

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultParam is the route parameter holding the company key.
	DefaultParam = "cid"
	// DefaultField is the query/body field the key is propagated into.
	DefaultField = "companyId"
)

// ErrorHandler renders tenant resolution and scoping failures.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	cache         Cache
	cacheTTL      time.Duration
	errorHandler  ErrorHandler
	skipPaths     []string
	requireActive bool
	logger        *slog.Logger
}

// Option configures Middleware.
type Option func(*config)

// WithCache replaces the default in-memory cache.
func WithCache(cache Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL sets how long a resolved company is cached. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.cacheTTL = ttl
	}
}

// WithErrorHandler sets a custom error renderer.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithSkipPaths lists path prefixes that bypass tenant resolution.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

// WithRequireActive controls whether inactive companies are rejected.
func WithRequireActive(require bool) Option {
	return func(c *config) {
		c.requireActive = require
	}
}

// WithLogger sets the logger used for provider failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// StatusCode maps a tenant error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInactiveTenant):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidIdentifier),
		errors.Is(err, ErrMissingTenantKey),
		errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, ErrNoTenantInContext):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// DefaultErrorHandler writes {"error":{"code":..,"message":..}} with the status from StatusCode.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := StatusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    errorCode(status),
			"message": msg,
		},
	})
}

func errorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return "tenant_not_found"
	case http.StatusForbidden:
		return "tenant_inactive"
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	default:
		return "internal_error"
	}
}
