package eventhub

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/backoffice/pkg/logger"
)

// Sink is the hub's handle on one open outbound connection.
//
// WriteFrame must not block and must not retain or modify frame beyond the
// call: the same slice is handed to every subscriber of a publish. Sinks are
// compared with ==, so implementations should be pointer types; Subscribe
// rejects sinks whose dynamic type is not comparable.
type Sink interface {
	WriteFrame(frame []byte) error
}

// Token identifies one subscription. It is returned by Subscribe and
// redeemed by Unsubscribe.
type Token struct {
	tenantKey string
	id        uuid.UUID
}

// TenantKey returns the tenant the subscription belongs to.
func (t Token) TenantKey() string { return t.tenantKey }

// ID returns the unique subscription id.
func (t Token) ID() string { return t.id.String() }

// IsZero reports whether the token was never issued by a hub.
func (t Token) IsZero() bool { return t.id == uuid.Nil }

// Hub maps tenant keys to their current subscribers.
// All methods are safe for concurrent use.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]*channel
	closed   bool

	log     *slog.Logger
	onCount func(tenantKey string, subscribers int)
}

// channel holds the subscribers of one tenant in subscription order.
// members is only mutated while Hub.mu is held for writing; mu serializes
// publishes to the same tenant so every subscriber sees them in order.
type channel struct {
	mu      sync.Mutex
	members []member
}

type member struct {
	id   uuid.UUID
	sink Sink
}

// New creates an empty hub.
func New(opts ...Option) *Hub {
	h := &Hub{
		channels: make(map[string]*channel),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers sink for events published to tenantKey. The tenant
// channel is created if this is its first subscriber. The dynamic type of
// sink must be comparable.
func (h *Hub) Subscribe(tenantKey string, sink Sink) (Token, error) {
	if tenantKey == "" {
		return Token{}, ErrEmptyTenantKey
	}
	if sink == nil {
		return Token{}, ErrNilSink
	}
	if !reflect.ValueOf(sink).Comparable() {
		return Token{}, ErrUncomparableSink
	}

	tok, count, err := h.subscribe(tenantKey, sink)
	if err != nil {
		return Token{}, err
	}
	h.reportCount(tenantKey, count)
	return tok, nil
}

func (h *Hub) subscribe(tenantKey string, sink Sink) (Token, int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return Token{}, 0, ErrHubClosed
	}

	ch, ok := h.channels[tenantKey]
	if !ok {
		ch = &channel{}
		h.channels[tenantKey] = ch
	}
	for _, m := range ch.members {
		if m.sink == sink {
			return Token{}, 0, ErrDuplicateSubscription
		}
	}

	tok := Token{tenantKey: tenantKey, id: uuid.New()}
	ch.members = append(ch.members, member{id: tok.id, sink: sink})
	return tok, len(ch.members), nil
}

// Unsubscribe removes the subscription identified by tok. When it was the
// last subscriber of its tenant the channel is dropped. It returns false if
// the subscription is unknown or already removed.
//
// Once Unsubscribe returns, the sink receives no further frames.
func (h *Hub) Unsubscribe(tok Token) bool {
	if tok.IsZero() {
		return false
	}

	count, ok := h.unsubscribe(tok)
	if !ok {
		return false
	}
	h.reportCount(tok.tenantKey, count)
	return true
}

func (h *Hub) unsubscribe(tok Token) (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := h.channels[tok.tenantKey]
	if !ok {
		return 0, false
	}

	idx := slices.IndexFunc(ch.members, func(m member) bool { return m.id == tok.id })
	if idx < 0 {
		return 0, false
	}

	ch.members = slices.Delete(ch.members, idx, idx+1)
	if len(ch.members) == 0 {
		delete(h.channels, tok.tenantKey)
	}
	return len(ch.members), true
}

// Publish encodes ev once and writes the resulting frame to every subscriber
// of tenantKey, in subscription order. It returns the number of subscribers
// that accepted the frame. Publishing to a tenant without subscribers does
// nothing and returns 0.
//
// A failing subscriber is logged and skipped; it stays registered until its
// own Unsubscribe.
func (h *Hub) Publish(ctx context.Context, tenantKey string, ev Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return 0
	}
	ch, ok := h.channels[tenantKey]
	if !ok {
		return 0
	}

	payload, err := ev.Encode()
	if err != nil {
		h.log.ErrorContext(ctx, "failed to encode event",
			logger.TenantKey(tenantKey),
			logger.Error(err),
		)
		return 0
	}
	frame := Frame(payload)

	ch.mu.Lock()
	defer ch.mu.Unlock()

	delivered := 0
	for _, m := range ch.members {
		if err := m.sink.WriteFrame(frame); err != nil {
			h.log.WarnContext(ctx, "failed to write event to subscriber",
				logger.TenantKey(tenantKey),
				logger.SubscriptionID(m.id.String()),
				logger.Error(err),
			)
			continue
		}
		delivered++
	}

	return delivered
}

// SubscriberCount returns the number of subscribers of tenantKey.
func (h *Hub) SubscriberCount(tenantKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if ch, ok := h.channels[tenantKey]; ok {
		return len(ch.members)
	}
	return 0
}

// Channels returns the sorted keys of tenants that have subscribers.
func (h *Hub) Channels() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	keys := make([]string, 0, len(h.channels))
	for k := range h.channels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of live tenant channels.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels)
}

// Close drops every channel and closes sinks implementing io.Closer.
// Later subscribes fail with ErrHubClosed and publishes return 0.
// Close is idempotent.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for key, ch := range h.channels {
		for _, m := range ch.members {
			if c, ok := m.sink.(io.Closer); ok {
				_ = c.Close()
			}
		}
		delete(h.channels, key)
	}

	return nil
}

func (h *Hub) reportCount(tenantKey string, count int) {
	if h.onCount != nil {
		h.onCount(tenantKey, count)
	}
}
