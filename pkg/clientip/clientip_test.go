package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/backoffice/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remote: "203.0.113.7:5123", want: "203.0.113.7"},
		{name: "remote addr without port", remote: "203.0.113.7", want: "203.0.113.7"},
		{name: "ipv6 remote", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "mapped ipv4", remote: "[::ffff:198.51.100.2]:80", want: "198.51.100.2"},
		{name: "garbage remote", remote: "not-an-ip", want: ""},
		{
			name:    "headers ignored when untrusted",
			remote:  "10.0.0.1:80",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:    "10.0.0.1",
		},
		{
			name:       "cloudflare header first",
			remote:     "10.0.0.1:80",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.9", "X-Forwarded-For": "203.0.113.7"},
			trustProxy: true,
			want:       "198.51.100.9",
		},
		{
			name:       "first valid forwarded address",
			remote:     "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "unknown, 203.0.113.7, 10.0.0.2"},
			trustProxy: true,
			want:       "203.0.113.7",
		},
		{
			name:       "invalid headers fall back to remote",
			remote:     "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "<script>"},
			trustProxy: true,
			want:       "10.0.0.1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(req, tt.trustProxy))
		})
	}
}

func TestMiddlewareAndExtractor(t *testing.T) {
	t.Parallel()

	var seen context.Context
	h := clientip.Middleware(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Context()
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:5123"
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, seen)
	assert.Equal(t, "203.0.113.7", clientip.FromContext(seen))

	attr, ok := clientip.LoggerExtractor()(seen)
	require.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "203.0.113.7", attr.Value.String())

	_, ok = clientip.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
