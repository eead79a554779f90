package analyticsstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	analyticsstore "github.com/dalemusser/templepulse/internal/app/store/analytics"
	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/dalemusser/templepulse/internal/testutil"
)

var testNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func newSource(t *testing.T) (*analyticsstore.Source, *testutil.Fixtures, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)
	src := analyticsstore.New(db, analytics.Options{TopDevotees: 5})
	src.Now = func() time.Time { return testNow }
	return src, testutil.NewFixtures(t, db), ctx
}

func TestSource_UnknownTemple(t *testing.T) {
	src, _, ctx := newSource(t)

	_, err := src.Fetch(ctx, "missing", models.Period30d)
	if !errors.Is(err, analytics.ErrTempleNotFound) {
		t.Errorf("err = %v, want ErrTempleNotFound", err)
	}
}

func TestSource_InvalidPeriod(t *testing.T) {
	src, _, ctx := newSource(t)

	_, err := src.Fetch(ctx, "wat-pho", models.Period("2w"))
	if !errors.Is(err, models.ErrInvalidPeriod) {
		t.Errorf("err = %v, want ErrInvalidPeriod", err)
	}
}

func TestSource_BuildsFromCollections(t *testing.T) {
	src, fx, ctx := newSource(t)

	fx.CreateTemple(ctx, "wat-pho", "Wat Pho")
	fx.CreateDevotee(ctx, "wat-pho", "u-1", "Somchai", testNow.AddDate(0, 0, -10), 1990)
	fx.CreateDevotee(ctx, "wat-pho", "u-2", "Malee", testNow.AddDate(-2, 0, 0), 1950)
	fx.CreateDevotee(ctx, "wat-arun", "u-9", "Other", testNow.AddDate(0, 0, -10), 1990)

	fx.CreateCheckin(ctx, "wat-pho", "u-1", testNow.AddDate(0, 0, -1))
	fx.CreateCheckin(ctx, "wat-pho", "u-1", testNow.AddDate(0, 0, -3))
	fx.CreateCheckin(ctx, "wat-pho", "u-2", testNow.AddDate(0, 0, -50))
	fx.CreateCheckin(ctx, "wat-arun", "u-9", testNow.AddDate(0, 0, -1))
	fx.CreateOrder(ctx, "wat-pho", "u-1", 300, testNow.AddDate(0, 0, -1))
	fx.CreateOrder(ctx, "wat-pho", "u-1", 200, testNow.AddDate(0, 0, -2))
	fx.CreateInteraction(ctx, "wat-pho", "u-2", models.InteractionPrayer, testNow.AddDate(0, 0, -4))

	snap, err := src.Fetch(ctx, "wat-pho", models.Period30d)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	ov := snap.Overview
	if ov.TotalMembers != 2 || ov.ActiveMembers != 1 || ov.NewMembers != 1 {
		t.Errorf("member counts = %+v", ov)
	}
	if ov.TotalCheckins != 2 || ov.TotalOrders != 2 {
		t.Errorf("activity counts = %+v", ov)
	}
	if ov.TotalSpend.String() != "500" {
		t.Errorf("TotalSpend = %s, want 500", ov.TotalSpend)
	}
	if snap.Funnel.RepeatOrder != 1 {
		t.Errorf("RepeatOrder = %d, want 1", snap.Funnel.RepeatOrder)
	}
	// u-2 was active in the previous 30-day block but not this one.
	if snap.Retention.ChurnedThisMonth != 1 {
		t.Errorf("ChurnedThisMonth = %d, want 1", snap.Retention.ChurnedThisMonth)
	}
	if len(snap.ActivityTrend) != 30 {
		t.Errorf("trend points = %d, want 30", len(snap.ActivityTrend))
	}
	if len(snap.TopDevotees) == 0 || snap.TopDevotees[0].PublicUserID != "u-1" {
		t.Errorf("top devotees = %+v", snap.TopDevotees)
	}
}
