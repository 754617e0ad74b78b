// internal/app/features/contacts/handler.go
package contacts

import (
	"net/http"
	"strings"

	"github.com/edumanage/schoolsite/internal/app/services/contactsvc"
	"github.com/edumanage/schoolsite/internal/app/system/envelope"
	"github.com/edumanage/schoolsite/internal/app/system/metrics"
	"github.com/edumanage/schoolsite/internal/app/system/paging"
	"github.com/edumanage/schoolsite/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SubmitMessage acknowledges an accepted contact form.
const SubmitMessage = "Thank you for your message! We'll get back to you within 24 hours."

type Handler struct {
	Svc     *contactsvc.Service
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func NewHandler(svc *contactsvc.Service, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		Svc:     svc,
		Metrics: m,
		Log:     logger,
	}
}

// Submit handles POST /api/contacts/.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var in contactsvc.Input
	if err := envelope.DecodeJSON(w, r, &in); err != nil {
		envelope.Error(w, h.Log, "contacts.submit", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "contacts.submit")
	defer cancel()

	c, err := h.Svc.Submit(ctx, in)
	if err != nil {
		envelope.Error(w, h.Log, "contacts.submit", err)
		return
	}
	h.Metrics.ContactSubmitted()
	h.Log.Info("contact submission received", zap.String("id", c.ID))
	envelope.OK(w, SubmitMessage, c)
}

// List handles GET /api/contacts/?status=&page=&limit=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := paging.IntParam(r, "page", contactsvc.DefaultPage)
	if err != nil {
		envelope.Error(w, h.Log, "contacts.list", err)
		return
	}
	limit, err := paging.IntParam(r, "limit", contactsvc.DefaultLimit)
	if err != nil {
		envelope.Error(w, h.Log, "contacts.list", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "contacts.list")
	defer cancel()

	res, err := h.Svc.List(ctx, contactsvc.ListParams{
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		envelope.Error(w, h.Log, "contacts.list", err)
		return
	}
	envelope.OK(w, "", res)
}

type statusBody struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/contacts/{id}/status. The new status comes
// from ?status= or, when absent, a JSON body {"status": "..."}.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status == "" && hasBody(r) {
		var body statusBody
		if err := envelope.DecodeJSON(w, r, &body); err != nil {
			envelope.Error(w, h.Log, "contacts.update_status", err, zap.String("id", id))
			return
		}
		status = strings.TrimSpace(body.Status)
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "contacts.update_status")
	defer cancel()

	if err := h.Svc.UpdateStatus(ctx, id, status); err != nil {
		envelope.Error(w, h.Log, "contacts.update_status", err, zap.String("id", id))
		return
	}
	h.Metrics.ContactStatusChanged(status)
	h.Log.Info("contact status updated", zap.String("id", id), zap.String("status", status))
	envelope.OK(w, "Contact status updated to "+status, nil)
}

func hasBody(r *http.Request) bool {
	return r.Body != nil && r.Body != http.NoBody && r.ContentLength != 0
}
