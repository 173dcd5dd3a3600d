// Package companies stores the back office's tenants in Postgres.
//
// Repository implements tenant.Provider: GetByIdentifier accepts either the
// company UUID or its slug, so /companies/acme/... and
// /companies/<uuid>/... resolve to the same company.
package companies
