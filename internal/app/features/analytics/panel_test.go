package analytics_test

import (
	"testing"
	"time"

	"github.com/dalemusser/templepulse/internal/app/features/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/dashstate"
	"github.com/dalemusser/templepulse/internal/domain/models"
)

func TestBuildPanel(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	snapA := &models.AnalyticsSnapshot{TempleID: "wat-pho", Period: models.Period30d}
	scope30 := dashstate.Scope{TempleID: "wat-pho", Period: models.Period30d}
	scope7 := dashstate.Scope{TempleID: "wat-pho", Period: models.Period7d}

	t.Run("first load pending", func(t *testing.T) {
		p := analytics.BuildPanel(scope30, dashstate.State{Scope: scope30, Loading: true}, en, now)
		if !p.ShowLoading || p.ShowWidgets || p.ShowError {
			t.Errorf("panel = %+v", p)
		}
	})

	t.Run("first load failed", func(t *testing.T) {
		st := dashstate.State{Scope: scope30, Err: dashstate.DefaultErrorMessage}
		p := analytics.BuildPanel(scope30, st, en, now)
		if p.ShowWidgets || !p.ShowError || p.Error != dashstate.DefaultErrorMessage {
			t.Errorf("panel = %+v", p)
		}
	})

	t.Run("failure after success keeps widgets", func(t *testing.T) {
		st := dashstate.State{Scope: scope7, Snapshot: snapA, Err: "Server unavailable", FetchedAt: now.Add(-3 * time.Minute)}
		p := analytics.BuildPanel(scope7, st, en, now)
		if !p.ShowWidgets || !p.ShowError || p.Error != "Server unavailable" {
			t.Errorf("panel = %+v", p)
		}
		if !p.Stale || p.StaleNote == "" {
			t.Error("snapshot for another period should be flagged stale")
		}
		if p.Updated != "3 minutes ago" {
			t.Errorf("Updated = %q", p.Updated)
		}
	})

	t.Run("refreshing keeps widgets without loading indicator", func(t *testing.T) {
		st := dashstate.State{Scope: scope30, Snapshot: snapA, Loading: true, FetchedAt: now}
		p := analytics.BuildPanel(scope30, st, en, now)
		if p.ShowLoading || !p.ShowWidgets || p.Stale {
			t.Errorf("panel = %+v", p)
		}
	})

	if got := analytics.PanelURL("wat pho", models.Period7d); got != "/temples/wat%20pho/dashboard/panel?period=7d" {
		t.Errorf("PanelURL = %q", got)
	}
}
