package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/backoffice/pkg/tenant"
	"github.com/dmitrymomot/backoffice/svc/companies"
)

func (h *handlers) listCompanies(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		h.error(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		h.error(w, r, err)
		return
	}

	list, err := h.companies.List(r.Context(), limit, offset)
	if err != nil {
		h.error(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list, map[string]any{"count": len(list), "offset": offset})
}

func (h *handlers) createCompany(w http.ResponseWriter, r *http.Request) {
	var params companies.CreateParams
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, tenant.MaxScopedBodySize)).Decode(&params); err != nil {
		h.error(w, r, errors.Join(ErrInvalidJSON, err))
		return
	}

	company, err := h.companies.Create(r.Context(), params)
	if err != nil {
		h.error(w, r, err)
		return
	}
	w.Header().Set("Location", "/companies/"+company.Key())
	writeData(w, http.StatusCreated, company, nil)
}

func (h *handlers) showCompany(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, tenant.MustFromContext(r.Context()), nil)
}

// setStatus suspends or reactivates a company and evicts it from the tenant
// cache so the change applies to the next request.
func (h *handlers) setStatus(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, tenant.DefaultParam)
	if !tenant.ValidKey(identifier) {
		h.error(w, r, tenant.ErrInvalidIdentifier)
		return
	}

	var body struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, tenant.MaxScopedBodySize)).Decode(&body); err != nil || body.Active == nil {
		h.error(w, r, errors.Join(ErrInvalidJSON, err))
		return
	}

	company, err := h.companies.GetByIdentifier(r.Context(), identifier)
	if err != nil {
		h.error(w, r, err)
		return
	}
	if err := h.companies.SetActive(r.Context(), company.ID, *body.Active); err != nil {
		h.error(w, r, err)
		return
	}

	h.cache.Delete(r.Context(), identifier)
	h.cache.Delete(r.Context(), company.Key())
	h.cache.Delete(r.Context(), company.Slug)

	company.Active = *body.Active
	writeData(w, http.StatusOK, company, nil)
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, ErrInvalidPage
	}
	return n, nil
}
