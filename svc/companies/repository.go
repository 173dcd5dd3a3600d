package companies

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/backoffice/pkg/pg"
	"github.com/dmitrymomot/backoffice/pkg/slug"
	"github.com/dmitrymomot/backoffice/pkg/tenant"
	"github.com/dmitrymomot/backoffice/pkg/validator"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200

	maxSlugLength     = 63
	maxNameLength     = 200
	slugSuffixLength  = 6
	slugCreateRetries = 3
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository reads and writes the companies table.
type Repository struct {
	db DB
}

var _ tenant.Provider = (*Repository)(nil)

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// CreateParams holds the fields a caller may set on a new company. An empty
// Slug is derived from Name.
type CreateParams struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Normalize trims the fields and lowercases the slug.
func (p CreateParams) Normalize() CreateParams {
	out := CreateParams{
		Slug: strings.ToLower(strings.TrimSpace(p.Slug)),
		Name: strings.TrimSpace(p.Name),
	}
	if out.Slug == "" {
		out.Slug = slug.Make(out.Name, maxSlugLength)
	}
	return out
}

func (p CreateParams) Validate() error {
	return validator.Apply(
		validator.Matches("slug", p.Slug, slugPattern, "2-63 lowercase letters, digits or dashes").WithErr(ErrInvalidSlug),
		validator.Required("name", p.Name).WithErr(ErrInvalidName),
		validator.MaxLen("name", p.Name, maxNameLength).WithErr(ErrInvalidName),
	)
}

const selectCompany = `SELECT id, slug, name, active, created_at FROM companies`

// GetByIdentifier looks a company up by UUID or slug.
func (r *Repository) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	var row pgx.Row
	if id, err := uuid.Parse(identifier); err == nil {
		row = r.db.QueryRow(ctx, selectCompany+` WHERE id = $1`, id)
	} else {
		row = r.db.QueryRow(ctx, selectCompany+` WHERE slug = $1`, strings.ToLower(identifier))
	}

	t, err := scanCompany(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, errors.Join(ErrQuery, err)
	}
	return t, nil
}

// Create inserts a company. A slug derived from the name gets a random
// suffix when it is already taken; an explicit slug fails with ErrSlugTaken.
func (r *Repository) Create(ctx context.Context, params CreateParams) (*tenant.Tenant, error) {
	derived := strings.TrimSpace(params.Slug) == ""
	params = params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	base := params.Slug
	for attempt := 0; ; attempt++ {
		t, err := r.insert(ctx, params)
		if !errors.Is(err, ErrSlugTaken) || !derived || attempt == slugCreateRetries {
			return t, err
		}
		params.Slug = slug.WithSuffix(base, slugSuffixLength, maxSlugLength)
	}
}

func (r *Repository) insert(ctx context.Context, params CreateParams) (*tenant.Tenant, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}

	t, err := scanCompany(r.db.QueryRow(ctx, `
INSERT INTO companies (id, slug, name)
VALUES ($1, $2, $3)
RETURNING id, slug, name, active, created_at`, id, params.Slug, params.Name))
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, ErrSlugTaken
		}
		return nil, errors.Join(ErrQuery, err)
	}
	return t, nil
}

// List returns companies newest first. limit is clamped to MaxListLimit and
// defaults to DefaultListLimit.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*tenant.Tenant, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	offset = max(offset, 0)

	rows, err := r.db.Query(ctx, selectCompany+` ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	defer rows.Close()

	out := make([]*tenant.Tenant, 0, limit)
	for rows.Next() {
		t, err := scanCompany(rows)
		if err != nil {
			return nil, errors.Join(ErrQuery, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	return out, nil
}

// SetActive suspends or reactivates a company.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE companies SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (*tenant.Tenant, error) {
	var t tenant.Tenant
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.Active, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
