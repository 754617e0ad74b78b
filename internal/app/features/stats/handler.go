// internal/app/features/stats/handler.go
package stats

import (
	"net/http"

	"github.com/edumanage/schoolsite/internal/app/services/statssvc"
	"github.com/edumanage/schoolsite/internal/app/system/envelope"
	"github.com/edumanage/schoolsite/internal/app/system/metrics"
	"github.com/edumanage/schoolsite/internal/app/system/timeouts"
	"github.com/edumanage/schoolsite/internal/domain/models"
	"go.uber.org/zap"
)

const UpdatedMessage = "Statistics updated successfully"

type Handler struct {
	Svc     *statssvc.Service
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func NewHandler(svc *statssvc.Service, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		Svc:     svc,
		Metrics: m,
		Log:     logger,
	}
}

// Get handles GET /api/stats/.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "stats.get")
	defer cancel()

	st, err := h.Svc.GetCurrent(ctx)
	if err != nil {
		envelope.Error(w, h.Log, "stats.get", err)
		return
	}
	envelope.OK(w, "", st)
}

// Update handles PATCH /api/stats/. Keys outside models.StatsPatch are rejected.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.StatsPatch
	if err := envelope.DecodeJSON(w, r, &p); err != nil {
		envelope.Error(w, h.Log, "stats.update", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "stats.update")
	defer cancel()

	st, err := h.Svc.Update(ctx, p)
	if err != nil {
		envelope.Error(w, h.Log, "stats.update", err)
		return
	}
	h.Metrics.StatsUpdated()
	h.Log.Info("school stats updated", zap.Bool("empty_patch", p.Empty()))
	envelope.OK(w, UpdatedMessage, st)
}
