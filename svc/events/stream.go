package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/backoffice/pkg/eventhub"
	"github.com/dmitrymomot/backoffice/pkg/logger"
	"github.com/dmitrymomot/backoffice/pkg/tenant"
	"github.com/dmitrymomot/backoffice/pkg/validator"
)

var eventTypePattern = regexp.MustCompile(`^[a-z][a-z0-9_.-]{0,99}$`)

// Message is the payload of every event published through the API.
type Message struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	CompanyID  string          `json:"companyId"`
	Data       json.RawMessage `json:"data,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type publishRequest struct {
	CompanyID string          `json:"companyId"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
}

func (h *handlers) stream(w http.ResponseWriter, r *http.Request) {
	key := tenantKey(r)

	st := eventhub.NewStream(h.cfg.StreamBuffer,
		eventhub.WithHeartbeat(h.cfg.Heartbeat),
		eventhub.WithRetry(h.cfg.Retry),
	)
	defer func() { _ = st.Close() }()

	tok, err := h.hub.Subscribe(key, st)
	if err != nil {
		h.error(w, r, err)
		return
	}
	defer h.hub.Unsubscribe(tok)

	log := h.log.With(logger.TenantKey(key), logger.SubscriptionID(tok.ID()))
	log.DebugContext(r.Context(), "event stream opened")

	start := time.Now()
	if err := st.Serve(r.Context(), w); err != nil {
		if errors.Is(err, eventhub.ErrStreamingUnsupported) {
			h.error(w, r, err)
			return
		}
		log.DebugContext(r.Context(), "event stream write failed", logger.Error(err))
	}

	if dropped := st.Dropped(); dropped > 0 {
		log.WarnContext(r.Context(), "slow consumer dropped events", "dropped", dropped)
	}
	log.DebugContext(r.Context(), "event stream closed", logger.Duration(time.Since(start)))
}

func (h *handlers) publish(w http.ResponseWriter, r *http.Request) {
	key := tenantKey(r)

	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, r, errors.Join(ErrInvalidJSON, err))
		return
	}
	if err := validator.Apply(
		validator.Matches("type", req.Type, eventTypePattern, "a lowercase dotted name such as order.created").WithErr(ErrInvalidEventType),
		validator.JSON("data", req.Data).WithErr(ErrInvalidEventData),
	); err != nil {
		h.error(w, r, err)
		return
	}

	msg := Message{
		ID:         newEventID(),
		Type:       req.Type,
		CompanyID:  req.CompanyID,
		Data:       req.Data,
		OccurredAt: time.Now().UTC(),
	}

	n, err := h.publisher.Publish(r.Context(), key, eventhub.Structured(msg))
	if err != nil {
		h.error(w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "event published",
		logger.TenantKey(key),
		logger.EventType(msg.Type),
		logger.Delivered(n),
	)
	writeData(w, http.StatusAccepted, map[string]any{"id": msg.ID, "delivered": n}, nil)
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]any{"subscribers": h.hub.SubscriberCount(tenantKey(r))}, nil)
}

// tenantKey returns the key set by tenant.Scope.
func tenantKey(r *http.Request) string {
	key, _ := tenant.KeyFromContext(r.Context())
	return key
}

func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
