package ratelimiter

import (
	"errors"
	"math"
	"net/http"
	"strconv"
)

// ErrLimitExceeded is passed to the error handler when a request is denied.
var ErrLimitExceeded = errors.New("ratelimiter: rate limit exceeded")

// KeyFunc extracts a rate limit key from the request. Requests with an empty
// key are not limited.
type KeyFunc func(r *http.Request) string

// ErrorHandler writes the response for denied requests and store failures.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type middlewareConfig struct {
	errorHandler ErrorHandler
}

type MiddlewareOption func(*middlewareConfig)

func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	if errors.Is(err, ErrLimitExceeded) {
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Middleware limits requests per key and sets X-RateLimit-* headers.
// Denied requests also get Retry-After in whole seconds.
func Middleware(l Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := l.Allow(r.Context(), key)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				// rounded up so clients never retry before the refill
				secs := int(math.Ceil(result.RetryAfter().Seconds()))
				h.Set("Retry-After", strconv.Itoa(max(secs, 1)))
				cfg.errorHandler(w, r, ErrLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
