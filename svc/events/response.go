package events

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/backoffice/pkg/eventhub"
	"github.com/dmitrymomot/backoffice/pkg/eventrelay"
	"github.com/dmitrymomot/backoffice/pkg/logger"
	"github.com/dmitrymomot/backoffice/pkg/ratelimiter"
	"github.com/dmitrymomot/backoffice/pkg/tenant"
	"github.com/dmitrymomot/backoffice/pkg/validator"
	"github.com/dmitrymomot/backoffice/svc/companies"
)

// Response is the JSON envelope of every non-streaming endpoint.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any, meta map[string]any) {
	writeJSON(w, status, Response{Data: data, Meta: meta})
}

// writeError maps err to a status and code. Unexpected errors are logged and
// answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, detail := errorDetail(err)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Error(err),
		)
	}
	writeJSON(w, status, Response{Error: detail})
}

func errorDetail(err error) (int, *ErrorDetail) {
	if ve := validator.Extract(err); ve != nil {
		return http.StatusUnprocessableEntity, &ErrorDetail{
			Code:    "validation_failed",
			Message: "validation failed",
			Details: ve.Map(),
		}
	}

	switch {
	case errors.Is(err, companies.ErrInvalidSlug):
		return http.StatusUnprocessableEntity, validation("slug", err)
	case errors.Is(err, companies.ErrInvalidName):
		return http.StatusUnprocessableEntity, validation("name", err)
	case errors.Is(err, ErrInvalidEventType):
		return http.StatusUnprocessableEntity, validation("type", err)
	case errors.Is(err, ErrInvalidEventData):
		return http.StatusUnprocessableEntity, validation("data", err)
	case errors.Is(err, companies.ErrSlugTaken):
		return http.StatusConflict, &ErrorDetail{Code: "conflict", Message: err.Error()}
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrInvalidPage):
		return http.StatusBadRequest, &ErrorDetail{Code: "bad_request", Message: err.Error()}
	case errors.Is(err, eventhub.ErrHubClosed):
		return http.StatusServiceUnavailable, &ErrorDetail{Code: "unavailable", Message: "event hub is shutting down"}
	case errors.Is(err, eventhub.ErrStreamingUnsupported):
		return http.StatusInternalServerError, &ErrorDetail{Code: "internal_error", Message: http.StatusText(http.StatusInternalServerError)}
	case errors.Is(err, ratelimiter.ErrLimitExceeded):
		return http.StatusTooManyRequests, &ErrorDetail{Code: "rate_limited", Message: "too many events for this company"}
	case errors.Is(err, ratelimiter.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, &ErrorDetail{Code: "unavailable", Message: "rate limiter is unavailable"}
	case errors.Is(err, eventrelay.ErrPublish):
		return http.StatusBadGateway, &ErrorDetail{Code: "publish_failed", Message: "event could not be published"}
	}

	status := tenant.StatusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	return status, &ErrorDetail{Code: codeForStatus(status), Message: msg}
}

func validation(field string, err error) *ErrorDetail {
	return &ErrorDetail{
		Code:    "validation_failed",
		Message: "validation failed",
		Details: map[string][]string{field: {err.Error()}},
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return "tenant_not_found"
	case http.StatusForbidden:
		return "tenant_inactive"
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	default:
		return "internal_error"
	}
}
