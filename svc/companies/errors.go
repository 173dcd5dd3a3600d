package companies

import "errors"

var (
	ErrInvalidSlug = errors.New("companies: slug must be 2-63 lowercase letters, digits or dashes")
	ErrInvalidName = errors.New("companies: name is required and at most 200 characters")
	ErrSlugTaken   = errors.New("companies: slug already taken")
	ErrQuery       = errors.New("companies: query failed")
)
