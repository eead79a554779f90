// internal/app/features/devotees/detail.go
package devotees

import (
	"context"
	"errors"
	"net/http"

	analyticsfeature "github.com/dalemusser/templepulse/internal/app/features/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/timeouts"
	"github.com/dalemusser/templepulse/internal/app/system/viewdata"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// detailData is the view model of the devotee page. The full name is never
// shown; the masked form matches the leaderboard.
type detailData struct {
	viewdata.BaseVM
	Name        string
	Tenure      string
	Joined      string
	AgeBracket  string
	Checkins    string
	LastCheckin string
	Orders      string
	Spend       string
}

// ServeDetail handles GET /devotees/{publicUserID}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "publicUserID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Profiles.Profile(ctx, publicID)
	switch {
	case errors.Is(err, models.ErrDevoteeNotFound):
		h.ErrLog.LogNotFound(w, r, "devotee not found", nil, "We couldn't find that devotee.", "")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "load devotee failed", err, "Unable to load this devotee.", "")
		return
	}

	templates.Render(w, r, "devotee_detail", h.detail(r, p))
}

func (h *Handler) detail(r *http.Request, p models.DevoteeProfile) detailData {
	now := h.now()
	d, t := p.Devotee, p.Totals

	age := analytics.AgeBracket(d.BirthYear, now)
	if age == "" {
		age = "-"
	}
	last := "Never"
	if !t.LastCheckin.IsZero() {
		last = h.Fmt.Relative(t.LastCheckin, now)
	}

	back := "/"
	if d.TempleID != "" {
		back = analyticsfeature.DashboardURL(d.TempleID, models.DefaultPeriod)
	}
	name := analytics.MaskName(d.FullName)
	return detailData{
		BaseVM:      viewdata.NewBaseVM(r, name, back),
		Name:        name,
		Tenure:      analyticsfeature.TenureLabel(analytics.TenureOf(d.JoinedAt, now)),
		Joined:      h.Fmt.LongDate(d.JoinedAt),
		AgeBracket:  age,
		Checkins:    h.Fmt.Number(int(t.Checkins)),
		LastCheckin: last,
		Orders:      h.Fmt.Number(int(t.Orders)),
		Spend:       "฿" + h.Fmt.Money(t.Spend),
	}
}
