// Package validator checks request input with small composable rules and
// reports every failing field at once.
//
//	err := validator.Apply(
//		validator.Required("name", p.Name),
//		validator.MaxLen("name", p.Name, 200),
//		validator.Matches("slug", p.Slug, slugRe, "lowercase letters, digits and dashes").WithErr(ErrInvalidSlug),
//	)
//
// Apply returns ValidationErrors, which unwraps to the errors attached with
// WithErr so callers can keep matching domain sentinels with errors.Is.
package validator
