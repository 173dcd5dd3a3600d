package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/backoffice/db/migrations"
	"github.com/dmitrymomot/backoffice/pkg/clientip"
	"github.com/dmitrymomot/backoffice/pkg/config"
	"github.com/dmitrymomot/backoffice/pkg/eventhub"
	"github.com/dmitrymomot/backoffice/pkg/eventrelay"
	"github.com/dmitrymomot/backoffice/pkg/httpserver"
	"github.com/dmitrymomot/backoffice/pkg/logger"
	"github.com/dmitrymomot/backoffice/pkg/pg"
	"github.com/dmitrymomot/backoffice/pkg/ratelimiter"
	"github.com/dmitrymomot/backoffice/pkg/redis"
	"github.com/dmitrymomot/backoffice/pkg/requestid"
	"github.com/dmitrymomot/backoffice/pkg/tenant"
	"github.com/dmitrymomot/backoffice/svc/companies"
	"github.com/dmitrymomot/backoffice/svc/events"
)

const serviceName = "backoffice"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load[Config](config.WithDotenv(".env"))
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			tenant.LoggerExtractor(),
		),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.Postgres, migrations.FS, log); err != nil {
		return err
	}

	hub := eventhub.New(
		eventhub.WithLogger(log.With(logger.Component("eventhub"))),
		eventhub.WithSubscriberCountCallback(func(tenantKey string, n int) {
			log.Debug("subscribers changed", logger.TenantKey(tenantKey), logger.Subscribers(n))
		}),
	)
	defer func() { _ = hub.Close() }()

	g, ctx := errgroup.WithContext(ctx)

	var (
		publisher  eventrelay.Publisher = eventrelay.NewLocalPublisher(hub)
		limitStore ratelimiter.Store
	)
	checks := []func(context.Context) error{pg.Healthcheck(pool)}

	if cfg.Redis.Enabled() {
		rdb, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		publisher = eventrelay.NewRedisPublisher(rdb, cfg.Events.RedisPrefix)
		checks = append(checks, redis.Healthcheck(rdb))
		limitStore = ratelimiter.NewRedisStore(rdb, serviceName+":ratelimit")

		relay := eventrelay.NewRelay(rdb, hub,
			eventrelay.WithPrefix(cfg.Events.RedisPrefix),
			eventrelay.WithLogger(log),
		)
		g.Go(func() error { return relay.Run(ctx) })
	} else {
		log.Info("REDIS_URL not set, events are delivered within this instance only")
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		limitStore = mem
	}

	var limiter ratelimiter.Limiter
	if limitCfg, ok := cfg.Events.PublishLimit(); ok {
		bucket, err := ratelimiter.NewBucket(limitStore, limitCfg)
		if err != nil {
			return err
		}
		limiter = bucket
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(cfg.TrustProxy))
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, checks...))
	r.Mount("/", events.Router(events.RouterOptions{
		Hub:            hub,
		Publisher:      publisher,
		Companies:      companies.NewRepository(pool),
		PublishLimiter: limiter,
		Config:         cfg.Events,
		Logger:         log,
	}))

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithShutdownHook(func() { _ = hub.Close() }),
	)
	g.Go(func() error { return srv.Run(ctx, r) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
