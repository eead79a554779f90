// internal/app/features/devotees/routes.go
package devotees

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted under /devotees.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{publicUserID}", h.ServeDetail)
	return r
}
