// internal/app/features/testimonials/handler.go
package testimonials

import (
	"net/http"

	"github.com/edumanage/schoolsite/internal/app/services/testimonialsvc"
	"github.com/edumanage/schoolsite/internal/app/system/envelope"
	"github.com/edumanage/schoolsite/internal/app/system/metrics"
	"github.com/edumanage/schoolsite/internal/app/system/paging"
	"github.com/edumanage/schoolsite/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const CreatedMessage = "Testimonial created successfully"

type Handler struct {
	Svc     *testimonialsvc.Service
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func NewHandler(svc *testimonialsvc.Service, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		Svc:     svc,
		Metrics: m,
		Log:     logger,
	}
}

// List handles GET /api/testimonials/?limit=&active=.
// active defaults to true; limit defaults to 6 and is capped at 20.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := paging.IntParam(r, "limit", testimonialsvc.DefaultLimit)
	if err != nil {
		envelope.Error(w, h.Log, "testimonials.list", err)
		return
	}
	active, err := paging.BoolParam(r, "active", true)
	if err != nil {
		envelope.Error(w, h.Log, "testimonials.list", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "testimonials.list")
	defer cancel()

	items, err := h.Svc.List(ctx, testimonialsvc.ListParams{ActiveOnly: active, Limit: limit})
	if err != nil {
		envelope.Error(w, h.Log, "testimonials.list", err)
		return
	}
	envelope.OK(w, "", items)
}

// Create handles POST /api/testimonials/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in testimonialsvc.Input
	if err := envelope.DecodeJSON(w, r, &in); err != nil {
		envelope.Error(w, h.Log, "testimonials.create", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "testimonials.create")
	defer cancel()

	t, err := h.Svc.Create(ctx, in)
	if err != nil {
		envelope.Error(w, h.Log, "testimonials.create", err)
		return
	}
	h.Metrics.TestimonialCreated()
	h.Log.Info("testimonial created", zap.String("id", t.ID))
	envelope.OK(w, CreatedMessage, t)
}

type toggleResult struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

// Toggle handles PATCH /api/testimonials/{id}/toggle.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "testimonials.toggle")
	defer cancel()

	active, err := h.Svc.ToggleActive(ctx, id)
	if err != nil {
		envelope.Error(w, h.Log, "testimonials.toggle", err, zap.String("id", id))
		return
	}
	h.Metrics.TestimonialToggled(active)

	msg := "Testimonial deactivated"
	if active {
		msg = "Testimonial activated"
	}
	envelope.OK(w, msg, toggleResult{ID: id, IsActive: active})
}
