package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant is the company a request is scoped to.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Key returns the identifier used for event channels: the company UUID.
func (t *Tenant) Key() string {
	return t.ID.String()
}

// Provider loads companies from a data source.
type Provider interface {
	// GetByIdentifier retrieves a company by UUID or slug.
	// Returns ErrTenantNotFound if nothing matches.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}
