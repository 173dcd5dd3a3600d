package main

import (
	"github.com/dmitrymomot/backoffice/pkg/httpserver"
	"github.com/dmitrymomot/backoffice/pkg/pg"
	"github.com/dmitrymomot/backoffice/pkg/redis"
	"github.com/dmitrymomot/backoffice/svc/events"
)

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	// Honor CF-Connecting-IP, X-Forwarded-For and X-Real-IP. Enable only
	// behind a proxy that overwrites them.
	TrustProxy bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	HTTP     httpserver.Config
	Postgres pg.Config
	Redis    redis.Config
	Events   events.Config
}
