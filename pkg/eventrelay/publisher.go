package eventrelay

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/backoffice/pkg/eventhub"
)

// DefaultPrefix namespaces the Redis channels.
const DefaultPrefix = "backoffice:events"

// Publisher delivers an event to the subscribers of tenantKey.
// The returned count is transport specific: local sinks for LocalPublisher,
// listening instances for RedisPublisher.
type Publisher interface {
	Publish(ctx context.Context, tenantKey string, ev eventhub.Event) (int, error)
}

// Hub is the part of *eventhub.Hub the relay writes to.
type Hub interface {
	Publish(ctx context.Context, tenantKey string, ev eventhub.Event) int
}

// LocalPublisher publishes straight into an in-process hub.
type LocalPublisher struct {
	hub Hub
}

func NewLocalPublisher(hub Hub) *LocalPublisher {
	return &LocalPublisher{hub: hub}
}

func (p *LocalPublisher) Publish(ctx context.Context, tenantKey string, ev eventhub.Event) (int, error) {
	if tenantKey == "" {
		return 0, ErrEmptyTenantKey
	}
	return p.hub.Publish(ctx, tenantKey, ev), nil
}

// redisPublishClient is satisfied by *redis.Client and redis.UniversalClient.
type redisPublishClient interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPublisher publishes encoded events on Redis pub/sub.
type RedisPublisher struct {
	client redisPublishClient
	prefix string
}

func NewRedisPublisher(client redisPublishClient, prefix string) *RedisPublisher {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisPublisher{client: client, prefix: prefix}
}

func (p *RedisPublisher) Publish(ctx context.Context, tenantKey string, ev eventhub.Event) (int, error) {
	if tenantKey == "" {
		return 0, ErrEmptyTenantKey
	}
	payload, err := ev.Encode()
	if err != nil {
		return 0, errors.Join(ErrPublish, err)
	}
	n, err := p.client.Publish(ctx, channelName(p.prefix, tenantKey), payload).Result()
	if err != nil {
		return 0, errors.Join(ErrPublish, err)
	}
	return int(n), nil
}

func channelName(prefix, tenantKey string) string {
	return prefix + ":" + tenantKey
}
