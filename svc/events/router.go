package events

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/backoffice/pkg/eventhub"
	"github.com/dmitrymomot/backoffice/pkg/eventrelay"
	"github.com/dmitrymomot/backoffice/pkg/logger"
	"github.com/dmitrymomot/backoffice/pkg/ratelimiter"
	"github.com/dmitrymomot/backoffice/pkg/tenant"
	"github.com/dmitrymomot/backoffice/svc/companies"
)

// CompanyStore is implemented by *companies.Repository.
type CompanyStore interface {
	tenant.Provider
	Create(ctx context.Context, params companies.CreateParams) (*tenant.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*tenant.Tenant, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// RouterOptions wires the router's dependencies. Hub and Companies are
// required. Publisher defaults to a LocalPublisher over Hub. A nil
// PublishLimiter leaves POST /events unlimited.
type RouterOptions struct {
	Hub            *eventhub.Hub
	Publisher      eventrelay.Publisher
	Companies      CompanyStore
	PublishLimiter ratelimiter.Limiter
	Config         Config
	Logger         *slog.Logger
}

type handlers struct {
	hub       *eventhub.Hub
	publisher eventrelay.Publisher
	companies CompanyStore
	cache     tenant.Cache
	cfg       Config
	log       *slog.Logger
}

// Router builds the company and event routes.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//	r.Mount("/", events.Router(events.RouterOptions{Hub: hub, Companies: repo, Config: cfg.Events}))
func Router(opts RouterOptions) chi.Router {
	h := &handlers{
		hub:       opts.Hub,
		publisher: opts.Publisher,
		companies: opts.Companies,
		cfg:       opts.Config,
		log:       opts.Logger,
	}
	if h.publisher == nil {
		h.publisher = eventrelay.NewLocalPublisher(opts.Hub)
	}
	if h.log == nil {
		h.log = logger.Discard()
	}
	h.log = h.log.With(logger.Component("events"))
	if h.cfg.StreamBuffer <= 0 {
		h.cfg.StreamBuffer = eventhub.DefaultStreamBuffer
	}
	h.cache = tenant.NewNoopCache()
	if h.cfg.TenantCacheTTL > 0 {
		h.cache = tenant.NewInMemoryCache(max(h.cfg.TenantCacheSize, 1))
	}

	tenantOpts := []tenant.Option{
		tenant.WithCache(h.cache),
		tenant.WithCacheTTL(h.cfg.TenantCacheTTL),
		tenant.WithErrorHandler(h.error),
		tenant.WithLogger(h.log),
	}

	r := chi.NewRouter()

	r.Get("/companies", h.listCompanies)
	r.Post("/companies", h.createCompany)

	r.Route("/companies/{"+tenant.DefaultParam+"}", func(r chi.Router) {
		// Reachable for suspended companies too, so they can be reactivated.
		r.Put("/status", h.setStatus)

		r.Group(func(r chi.Router) {
			r.Use(tenant.Middleware(tenant.NewPathResolver(tenant.DefaultParam), h.companies, tenantOpts...))
			r.Use(tenant.Scope(tenant.DefaultParam, tenant.DefaultField, tenant.WithErrorHandler(h.error)))

			r.Get("/", h.showCompany)
			r.Get("/events", h.stream)
			r.With(h.publishLimit(opts.PublishLimiter)).Post("/events", h.publish)
			r.Get("/events/stats", h.stats)
		})
	})

	return r
}

func (h *handlers) error(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, h.log, err)
}

func (h *handlers) publishLimit(l ratelimiter.Limiter) func(http.Handler) http.Handler {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimiter.Middleware(l, func(r *http.Request) string {
		key, _ := tenant.KeyFromContext(r.Context())
		return key
	}, ratelimiter.WithErrorHandler(h.error))
}
