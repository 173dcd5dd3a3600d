package eventhub

import (
	"log/slog"
	"time"
)

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger used for write and encoding failures.
// A nil logger keeps the default discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.log = l
		}
	}
}

// WithSubscriberCountCallback registers a function called with the tenant key
// and its new subscriber count after every subscribe and unsubscribe.
// The callback runs outside the hub's locks and must not block.
func WithSubscriberCountCallback(fn func(tenantKey string, subscribers int)) Option {
	return func(h *Hub) {
		h.onCount = fn
	}
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithHeartbeat makes Serve emit a comment frame at the given interval.
// Zero disables heartbeats.
func WithHeartbeat(d time.Duration) StreamOption {
	return func(s *Stream) {
		if d >= 0 {
			s.heartbeat = d
		}
	}
}

// WithRetry sets the reconnection delay advertised to the client when the
// stream opens. Zero leaves the client default.
func WithRetry(d time.Duration) StreamOption {
	return func(s *Stream) {
		if d >= 0 {
			s.retry = d
		}
	}
}
