package eventrelay

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/backoffice/pkg/eventhub"
	"github.com/dmitrymomot/backoffice/pkg/logger"
)

// redisSubscribeClient is satisfied by *redis.Client.
type redisSubscribeClient interface {
	PSubscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// Relay feeds events published on Redis into the local hub.
type Relay struct {
	client      redisSubscribeClient
	hub         Hub
	prefix      string
	channelSize int
	log         *slog.Logger
}

// RelayOption configures a Relay.
type RelayOption func(*Relay)

// WithPrefix overrides DefaultPrefix. It must match the publishers' prefix.
func WithPrefix(prefix string) RelayOption {
	return func(r *Relay) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithChannelSize sets the go-redis message buffer between the connection
// and the hub.
func WithChannelSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.channelSize = n
		}
	}
}

func WithLogger(l *slog.Logger) RelayOption {
	return func(r *Relay) {
		if l != nil {
			r.log = l
		}
	}
}

func NewRelay(client redisSubscribeClient, hub Hub, opts ...RelayOption) *Relay {
	r := &Relay{
		client:      client,
		hub:         hub,
		prefix:      DefaultPrefix,
		channelSize: 100,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logger.Component("eventrelay"))
	return r
}

// Run subscribes and relays messages until ctx is cancelled.
// It returns nil on cancellation and an error if the subscription fails or
// its channel closes.
func (r *Relay) Run(ctx context.Context) error {
	ps := r.client.PSubscribe(ctx, channelName(r.prefix, "*"))
	defer func() { _ = ps.Close() }()

	if _, err := ps.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Join(ErrSubscribe, err)
	}
	r.log.InfoContext(ctx, "relay subscribed", slog.String("pattern", channelName(r.prefix, "*")))

	messages := ps.Channel(redis.WithChannelSize(r.channelSize))
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return ErrRelayClosed
			}
			r.handle(ctx, msg)
		}
	}
}

func (r *Relay) handle(ctx context.Context, msg *redis.Message) int {
	tenantKey, ok := strings.CutPrefix(msg.Channel, r.prefix+":")
	if !ok || tenantKey == "" {
		r.log.WarnContext(ctx, "ignoring message on unexpected channel", slog.String("channel", msg.Channel))
		return 0
	}
	delivered := r.hub.Publish(ctx, tenantKey, eventhub.Raw(msg.Payload))
	r.log.DebugContext(ctx, "relayed event", logger.TenantKey(tenantKey), logger.Delivered(delivered))
	return delivered
}
