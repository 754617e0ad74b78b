// internal/app/features/contacts/routes.go
package contacts

import (
	"net/http"

	"github.com/edumanage/schoolsite/internal/app/system/adminauth"
	"github.com/edumanage/schoolsite/internal/app/system/envelope"
	"github.com/edumanage/schoolsite/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// RateLimitedMessage is returned with 429 when a client submits too often.
const RateLimitedMessage = "Too many submissions. Please try again later."

// Routes mounts under /api/contacts. Submitting is public and rate limited;
// listing and status changes sit behind the admin guard.
func Routes(h *Handler, guard *adminauth.Guard, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.With(ratelimit.Middleware(limiter, rejectRateLimited)).Post("/", h.Submit)

	r.Group(func(r chi.Router) {
		r.Use(guard.Require)
		r.Get("/", h.List)
		r.Patch("/{id}/status", h.UpdateStatus)
	})
	return r
}

func rejectRateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	envelope.Fail(w, http.StatusTooManyRequests, RateLimitedMessage, nil)
}
