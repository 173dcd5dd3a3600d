package tenant

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MaxScopedBodySize bounds the request body Scope is willing to rewrite.
const MaxScopedBodySize = 1 << 20

// Scope propagates the tenant key of the route into the request data.
//
// For GET, HEAD and OPTIONS the key is written to the query parameter named
// field. For every other method it is written to the body field of the same
// name: JSON objects and url-encoded forms are rewritten, an empty body
// becomes {"<field>":"<key>"}. In both cases the route value replaces any
// client-supplied value.
//
// When Middleware has already resolved the company, its canonical key (the
// company UUID) is used instead of the raw path value, so slugs and ids end up
// on the same event channel.
func Scope(param, field string, opts ...Option) func(http.Handler) http.Handler {
	if param == "" {
		param = DefaultParam
	}
	if field == "" {
		field = DefaultField
	}
	cfg := &config{errorHandler: DefaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := resolveScopeKey(r, param)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				r.URL.RawQuery = scopeQuery(r.URL.Query(), field, key)
			default:
				if err := scopeBody(w, r, field, key); err != nil {
					cfg.errorHandler(w, r, err)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithKey(r.Context(), key)))
		})
	}
}

func resolveScopeKey(r *http.Request, param string) (string, error) {
	if t, ok := FromContext(r.Context()); ok {
		return t.Key(), nil
	}
	key := strings.TrimSpace(chi.URLParam(r, param))
	if key == "" {
		return "", ErrMissingTenantKey
	}
	if !ValidKey(key) {
		return "", ErrInvalidIdentifier
	}
	return key, nil
}

func scopeBody(w http.ResponseWriter, r *http.Request, field, key string) error {
	var raw []byte
	if r.Body != nil {
		var err error
		raw, err = io.ReadAll(http.MaxBytesReader(w, r.Body, MaxScopedBodySize))
		_ = r.Body.Close()
		if err != nil {
			return errors.Join(ErrInvalidBody, err)
		}
	}

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			mediaType = mt
		}
	}

	var (
		body []byte
		err  error
	)
	switch {
	case mediaType == "application/x-www-form-urlencoded":
		body, err = scopeForm(raw, field, key)
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		body, err = scopeJSON(raw, field, key)
		if len(bytes.TrimSpace(raw)) == 0 {
			r.Header.Set("Content-Type", "application/json")
		}
	default:
		err = ErrInvalidBody
	}
	if err != nil {
		return err
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	r.ContentLength = int64(len(body))
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))
	return nil
}

func scopeJSON(raw []byte, field, key string) ([]byte, error) {
	obj := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, errors.Join(ErrInvalidBody, err)
		}
		if obj == nil {
			return nil, ErrInvalidBody
		}
	}

	// encoding/json matches struct fields case-insensitively, so a
	// "companyid" key would otherwise survive next to the scoped one.
	for k := range obj {
		if strings.EqualFold(k, field) {
			delete(obj, k)
		}
	}

	v, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}
	obj[field] = v

	return json.Marshal(obj)
}

func scopeForm(raw []byte, field, key string) ([]byte, error) {
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, errors.Join(ErrInvalidBody, err)
	}
	return []byte(scopeQuery(values, field, key)), nil
}

func scopeQuery(values url.Values, field, key string) string {
	for k := range values {
		if strings.EqualFold(k, field) {
			delete(values, k)
		}
	}
	values.Set(field, key)
	return values.Encode()
}
