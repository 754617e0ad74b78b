// internal/app/features/testimonials/routes.go
package testimonials

import (
	"github.com/edumanage/schoolsite/internal/app/system/adminauth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts under /api/testimonials. Listing is public.
func Routes(h *Handler, guard *adminauth.Guard) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(guard.Require)
		r.Post("/", h.Create)
		r.Patch("/{id}/toggle", h.Toggle)
	})
	return r
}
