package events

import (
	"time"

	"github.com/dmitrymomot/backoffice/pkg/ratelimiter"
)

type Config struct {
	StreamBuffer int           `env:"EVENTS_STREAM_BUFFER" envDefault:"64"`
	Heartbeat    time.Duration `env:"EVENTS_HEARTBEAT" envDefault:"15s"`
	Retry        time.Duration `env:"EVENTS_RETRY" envDefault:"3s"`
	RedisPrefix  string        `env:"EVENTS_REDIS_PREFIX" envDefault:"backoffice:events"`

	// Per-company publish limit. PublishBurst of 0 disables it.
	PublishBurst    int           `env:"EVENTS_PUBLISH_BURST" envDefault:"100"`
	PublishRate     int           `env:"EVENTS_PUBLISH_RATE" envDefault:"20"`
	PublishInterval time.Duration `env:"EVENTS_PUBLISH_INTERVAL" envDefault:"1s"`

	TenantCacheSize int           `env:"TENANT_CACHE_SIZE" envDefault:"1000"`
	TenantCacheTTL  time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		StreamBuffer:    64,
		Heartbeat:       15 * time.Second,
		Retry:           3 * time.Second,
		RedisPrefix:     "backoffice:events",
		PublishBurst:    100,
		PublishRate:     20,
		PublishInterval: time.Second,
		TenantCacheSize: 1000,
		TenantCacheTTL:  5 * time.Minute,
	}
}

// PublishLimit returns the bucket configuration for POST /events and false
// when limiting is disabled.
func (c Config) PublishLimit() (ratelimiter.Config, bool) {
	if c.PublishBurst <= 0 {
		return ratelimiter.Config{}, false
	}
	return ratelimiter.Config{
		Capacity:       c.PublishBurst,
		RefillRate:     max(c.PublishRate, 1),
		RefillInterval: max(c.PublishInterval, time.Millisecond),
	}, true
}
