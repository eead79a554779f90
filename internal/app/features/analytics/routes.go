// internal/app/features/analytics/routes.go
package analytics

import "github.com/go-chi/chi/v5"

// Routes returns the dashboard router, mounted under /temples.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Main dashboard page
	r.Get("/{templeID}/dashboard", h.ServeDashboard)

	// HTMX endpoint for period change and refresh
	r.Get("/{templeID}/dashboard/panel", h.ServePanel)

	return r
}

// APIRoutes returns the JSON router, mounted under /api/temples.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{templeID}/analytics", h.ServeAPI)
	return r
}
