package events

import "errors"

var (
	ErrInvalidJSON      = errors.New("request body must be a JSON object")
	ErrInvalidEventType = errors.New("event type must match ^[a-z][a-z0-9_.-]{0,99}$")
	ErrInvalidEventData = errors.New("event data must be valid JSON")
	ErrInvalidPage      = errors.New("limit and offset must be non-negative integers")
)
