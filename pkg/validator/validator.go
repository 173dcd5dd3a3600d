package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes one failed rule.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the errors attached to failed rules.
func (ve ValidationErrors) Unwrap() []error {
	var errs []error
	for _, e := range ve {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}
	return errs
}

func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Map groups messages by field.
func (ve ValidationErrors) Map() map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, e := range ve {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// Rule is a deferred check. Check is only evaluated by Apply.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// WithErr attaches err to the failure so errors.Is matches it.
func (r Rule) WithErr(err error) Rule {
	r.Error.Err = err
	return r
}

// Apply runs every rule and returns ValidationErrors for those that failed,
// or nil.
func Apply(rules ...Rule) error {
	var ve ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			ve = append(ve, rule.Error)
		}
	}
	if len(ve) == 0 {
		return nil
	}
	return ve
}

// Extract returns the ValidationErrors inside err, or nil.
func Extract(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
