// internal/app/features/analytics/panel.go
package analytics

import (
	"net/url"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/dashstate"
	"github.com/dalemusser/templepulse/internal/app/system/format"
	"github.com/dalemusser/templepulse/internal/domain/models"
)

// BuildWidgets derives every leaf view model from one snapshot.
func BuildWidgets(s *models.AnalyticsSnapshot, f *format.Formatter) Widgets {
	return Widgets{
		Overview:   BuildOverview(s.Overview, f),
		Trend:      BuildTrend(s.ActivityTrend, s.InteractionTypes, f),
		Engagement: BuildEngagement(s.CheckinFrequency, s.TopDevotees, f),
		Spend:      BuildSpend(s.SpendDistribution, s.Funnel, f),
		Retention:  BuildRetention(s.Retention, s.Overview.TotalMembers, f),
		Tenure:     BuildTenure(s.MemberTenure, f),
		Age:        BuildAge(s.AgeDistribution, f),
	}
}

// PanelURL is the HTMX endpoint that loads templeID's panel for period.
func PanelURL(templeID string, period models.Period) string {
	return "/temples/" + url.PathEscape(templeID) + "/dashboard/panel?" +
		url.Values{"period": {string(period)}}.Encode()
}

// BuildPanel turns a container state into the panel view model for scope.
// Widgets are present only when a snapshot is held; a held snapshot for
// another scope is flagged as stale.
func BuildPanel(scope dashstate.Scope, st dashstate.State, f *format.Formatter, now time.Time) PanelData {
	p := PanelData{
		TempleID:    scope.TempleID,
		Period:      string(scope.Period),
		PanelURL:    PanelURL(scope.TempleID, scope.Period),
		ShowLoading: st.ShowLoading(),
		ShowError:   st.ShowError(),
		Error:       st.Err,
		ShowWidgets: st.ShowWidgets(),
	}
	if !p.ShowWidgets {
		return p
	}
	p.Widgets = BuildWidgets(st.Snapshot, f)
	p.Updated = f.Relative(st.FetchedAt, now)
	if st.Snapshot.TempleID != scope.TempleID || st.Snapshot.Period != scope.Period {
		p.Stale = true
		p.StaleNote = "These figures are from the last successful load (" + st.Snapshot.Period.Label() + ")."
	}
	return p
}

// periodOptions lists the selector entries with selected marked.
func periodOptions(selected models.Period) []PeriodOption {
	out := make([]PeriodOption, len(models.Periods))
	for i, p := range models.Periods {
		out[i] = PeriodOption{Value: string(p), Label: p.Label(), Selected: p == selected}
	}
	return out
}
