package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/domain/models"
)

func newTestMock() *analytics.MockSource {
	m := analytics.NewMockSource(analytics.Options{})
	m.Now = func() time.Time { return testNow }
	return m
}

func TestMockSource_Deterministic(t *testing.T) {
	m := newTestMock()
	ctx := context.Background()

	a, err := m.Fetch(ctx, "wat-pho", models.Period30d)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	b, err := m.Fetch(ctx, "wat-pho", models.Period30d)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if a.Overview.TotalMembers != b.Overview.TotalMembers || a.Overview.TotalCheckins != b.Overview.TotalCheckins {
		t.Errorf("same temple and day produced different overviews: %+v vs %+v", a.Overview, b.Overview)
	}
	if len(a.TopDevotees) > 0 && a.TopDevotees[0].PublicUserID != b.TopDevotees[0].PublicUserID {
		t.Error("leaderboard differs between identical fetches")
	}
}

func TestMockSource_Shape(t *testing.T) {
	m := newTestMock()
	for _, p := range models.Periods {
		s, err := m.Fetch(context.Background(), "wat-arun", p)
		if err != nil {
			t.Fatalf("Fetch(%s): %v", p, err)
		}
		if len(s.ActivityTrend) != p.Days() {
			t.Errorf("%s: trend length = %d, want %d", p, len(s.ActivityTrend), p.Days())
		}
		if len(s.TopDevotees) > analytics.DefaultTopDevotees {
			t.Errorf("%s: leaderboard length = %d", p, len(s.TopDevotees))
		}
		if s.Overview.TotalMembers < 120 {
			t.Errorf("%s: TotalMembers = %d, want >= 120", p, s.Overview.TotalMembers)
		}
		if len(s.AgeDistribution) != len(models.AgeBrackets) {
			t.Errorf("%s: age buckets = %d", p, len(s.AgeDistribution))
		}
		for i, b := range s.AgeDistribution {
			if b.Range != models.AgeBrackets[i] {
				t.Errorf("%s: age bucket %d = %q, want %q", p, i, b.Range, models.AgeBrackets[i])
			}
		}
	}
}

func TestMockSource_Errors(t *testing.T) {
	m := newTestMock()

	if _, err := m.Fetch(context.Background(), " ", models.Period7d); !errors.Is(err, analytics.ErrTempleNotFound) {
		t.Errorf("blank temple err = %v, want ErrTempleNotFound", err)
	}
	if _, err := m.Fetch(context.Background(), "wat-nowhere", models.Period7d); !errors.Is(err, analytics.ErrTempleNotFound) {
		t.Errorf("unknown temple err = %v, want ErrTempleNotFound", err)
	}
	for _, temple := range analytics.DemoTemples {
		if _, err := m.Fetch(context.Background(), temple.TempleID, models.Period7d); err != nil {
			t.Errorf("Fetch(%s): %v", temple.TempleID, err)
		}
	}
	if _, err := m.Fetch(context.Background(), "wat-pho", models.Period("2d")); !errors.Is(err, models.ErrInvalidPeriod) {
		t.Errorf("bad period err = %v, want ErrInvalidPeriod", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Fetch(ctx, "wat-pho", models.Period7d); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled ctx err = %v, want context.Canceled", err)
	}
}
