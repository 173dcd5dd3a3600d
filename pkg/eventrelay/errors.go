package eventrelay

import "errors"

var (
	ErrEmptyTenantKey = errors.New("eventrelay: empty tenant key")
	ErrPublish        = errors.New("eventrelay: failed to publish event")
	ErrSubscribe      = errors.New("eventrelay: failed to subscribe")
	ErrRelayClosed    = errors.New("eventrelay: subscription channel closed")
)
