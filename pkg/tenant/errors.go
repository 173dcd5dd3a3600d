package tenant

import "errors"

var (
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrInactiveTenant    = errors.New("tenant is inactive")
	ErrNoTenantInContext = errors.New("no tenant in context")
	ErrMissingTenantKey  = errors.New("missing tenant key")
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")
	ErrInvalidBody       = errors.New("request body must be a JSON object")
)
