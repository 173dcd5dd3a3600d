// Package tenant scopes HTTP requests to exactly one company.
//
// Three pieces work together:
//
//  1. Resolvers extract the tenant key from a request. In the back office the
//     key always comes from the trusted {cid} path parameter of
//     /companies/{cid}/... routes (PathResolver); HeaderResolver and
//     CompositeResolver exist for internal callers.
//  2. Middleware loads the company through a Provider, caches it, rejects
//     unknown and inactive companies and stores it in the request context.
//  3. Scope copies the path key into the query string of read requests and
//     into the JSON body of mutating requests, so services never see a
//     client-supplied companyId that differs from the route.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Route("/companies/{cid}", func(r chi.Router) {
//		r.Use(tenant.Middleware(tenant.NewPathResolver("cid"), companies))
//		r.Use(tenant.Scope("cid", tenant.DefaultField))
//		r.Get("/events", streamHandler)
//		r.Post("/events", publishHandler)
//	})
//
// Handlers read the company with FromContext and the raw key with
// KeyFromContext.
//
// # Errors
//
//   - ErrTenantNotFound: 404, company does not exist
//   - ErrInactiveTenant: 403, company is disabled
//   - ErrMissingTenantKey: 400, route has no tenant key
//   - ErrInvalidBody: 400, mutating request body is not a JSON object
//
// Use WithErrorHandler to render these differently.
package tenant
