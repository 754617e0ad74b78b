// internal/app/features/stats/routes.go
package stats

import (
	"github.com/edumanage/schoolsite/internal/app/system/adminauth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /api/stats.
func Routes(h *Handler, guard *adminauth.Guard) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.With(guard.Require).Patch("/", h.Update)
	return r
}
