package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MaxKeyLength bounds tenant keys taken from requests.
const MaxKeyLength = 64

// keyPattern accepts UUIDs and slugs: alphanumeric start, then letters, digits, '-' or '_'.
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ValidKey reports whether key is an acceptable tenant key.
func ValidKey(key string) bool {
	return key != "" && len(key) <= MaxKeyLength && keyPattern.MatchString(key)
}

// Resolver extracts the tenant key from a request.
// It returns an empty string when the request carries no key.
type Resolver interface {
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc adapts an ordinary function to Resolver.
type ResolverFunc func(r *http.Request) (string, error)

// Resolve calls f(r).
func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// PathResolver reads the key from a chi route parameter.
type PathResolver struct {
	Param string
}

// NewPathResolver creates a resolver for the named route parameter.
func NewPathResolver(param string) *PathResolver {
	if param == "" {
		param = DefaultParam
	}
	return &PathResolver{Param: param}
}

// Resolve returns the route parameter value.
func (p *PathResolver) Resolve(r *http.Request) (string, error) {
	key := strings.TrimSpace(chi.URLParam(r, p.Param))
	if key == "" {
		return "", nil
	}
	if !ValidKey(key) {
		return "", ErrInvalidIdentifier
	}
	return key, nil
}

// HeaderResolver reads the key from a request header.
type HeaderResolver struct {
	Header string
}

// NewHeaderResolver creates a header resolver; an empty name means X-Company-ID.
func NewHeaderResolver(header string) *HeaderResolver {
	if header == "" {
		header = "X-Company-ID"
	}
	return &HeaderResolver{Header: header}
}

// Resolve returns the header value.
func (h *HeaderResolver) Resolve(r *http.Request) (string, error) {
	key := strings.TrimSpace(r.Header.Get(h.Header))
	if key == "" {
		return "", nil
	}
	if !ValidKey(key) {
		return "", ErrInvalidIdentifier
	}
	return key, nil
}

// CompositeResolver tries resolvers in order and returns the first key found.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a composite resolver.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

// Resolve returns the first non-empty key. Errors are returned only if no
// resolver produced a key.
func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	var errs []error
	for _, res := range c.Resolvers {
		key, err := res.Resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if key != "" {
			return key, nil
		}
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("composite resolver: %w", errors.Join(errs...))
	}
	return "", nil
}
