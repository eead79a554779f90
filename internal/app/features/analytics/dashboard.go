// internal/app/features/analytics/dashboard.go
package analytics

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dalemusser/templepulse/internal/app/system/dashstate"
	"github.com/dalemusser/templepulse/internal/app/system/timeouts"
	"github.com/dalemusser/templepulse/internal/app/system/viewdata"
	"github.com/dalemusser/templepulse/internal/app/system/viewer"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DashboardURL is the full page for templeID and period.
func DashboardURL(templeID string, period models.Period) string {
	return "/temples/" + url.PathEscape(templeID) + "/dashboard?" +
		url.Values{"period": {string(period)}}.Encode()
}

// requestedPeriod reads ?period=, falling back to the default when absent.
func (h *Handler) requestedPeriod(r *http.Request) (models.Period, error) {
	raw := query.Get(r, "period")
	if raw == "" {
		return h.DefaultPeriod, nil
	}
	return models.ParsePeriod(raw)
}

// ServeDashboard renders the dashboard page. Whatever the viewer's container
// already holds is shown at once and the panel then requests a fresh
// snapshot for the chosen scope.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	templeID := chi.URLParam(r, "templeID")
	period, perr := h.requestedPeriod(r)
	if perr != nil {
		period = h.DefaultPeriod
	}
	scope := dashstate.Scope{TempleID: templeID, Period: period}

	c := h.Registry.Get(viewer.ID(r), templeID)
	panel := BuildPanel(scope, c.State(), h.Fmt, h.now())
	if perr != nil {
		panel.ShowError = true
		panel.Error = dashstate.Message(perr)
	} else {
		panel.FetchOnLoad = true
		panel.ShowLoading = !panel.ShowWidgets
	}

	name := h.templeName(r.Context(), templeID)
	data := DashboardData{
		BaseVM:     viewdata.NewBaseVM(r, name, "/"),
		TempleID:   templeID,
		TempleName: name,
		Periods:    periodOptions(period),
		Panel:      panel,
	}
	templates.Render(w, r, "analytics_view", data)
}

// ServePanel loads a snapshot for the requested scope and renders just the
// panel for HTMX to swap in. Period changes and the refresh button both
// land here.
func (h *Handler) ServePanel(w http.ResponseWriter, r *http.Request) {
	templeID := chi.URLParam(r, "templeID")
	vid := viewer.ID(r)
	c := h.Registry.Get(vid, templeID)

	period, err := h.requestedPeriod(r)
	if err != nil {
		st := c.State()
		scope := dashstate.Scope{TempleID: templeID, Period: h.DefaultPeriod}
		if st.Scope.Period != "" {
			scope.Period = st.Scope.Period
		}
		panel := BuildPanel(scope, st, h.Fmt, h.now())
		panel.ShowError = true
		panel.Error = dashstate.Message(err)
		templates.RenderSnippet(w, "analytics_panel", panel)
		return
	}

	scope := dashstate.Scope{TempleID: templeID, Period: period}
	st, err := c.Load(r.Context(), scope)
	if errors.Is(err, dashstate.ErrClosed) {
		// Swept between Get and Load; a fresh container takes over.
		c = h.Registry.Get(vid, templeID)
		st, err = c.Load(r.Context(), scope)
	}
	if err != nil {
		h.Log.Warn("dashboard panel load failed", zap.String("temple_id", templeID), zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("HX-Push-Url", DashboardURL(templeID, period))
	templates.RenderSnippet(w, "analytics_panel", BuildPanel(scope, st, h.Fmt, h.now()))
}

// templeName returns the temple's display name, or templeID when the
// directory does not know it.
func (h *Handler) templeName(ctx context.Context, templeID string) string {
	if h.Temples == nil {
		return templeID
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	t, err := h.Temples.GetByTempleID(ctx, templeID)
	if err != nil || t.Name == "" {
		h.Log.Debug("temple name lookup failed", zap.String("temple_id", templeID), zap.Error(err))
		return templeID
	}
	return t.Name
}
