package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/shopspring/decimal"
)

// DemoTemples are listed on the temple picker when the mock source is active.
var DemoTemples = []models.Temple{
	{TempleID: "wat-arun", Name: "Wat Arun", Province: "Bangkok"},
	{TempleID: "wat-phra-singh", Name: "Wat Phra Singh", Province: "Chiang Mai"},
	{TempleID: "wat-pho", Name: "Wat Pho", Province: "Bangkok"},
}

// DemoDirectory serves DemoTemples with the same lookups the temple store
// offers.
type DemoDirectory struct{}

// List returns the demo temples whose folded name starts with the folded q.
func (DemoDirectory) List(_ context.Context, q string, limit int64) ([]models.Temple, error) {
	prefix := text.Fold(q)
	var out []models.Temple
	for _, t := range DemoTemples {
		if prefix != "" && !strings.HasPrefix(text.Fold(t.Name), prefix) {
			continue
		}
		out = append(out, t)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

// GetByTempleID returns the demo temple with templeID.
func (DemoDirectory) GetByTempleID(_ context.Context, templeID string) (models.Temple, error) {
	for _, t := range DemoTemples {
		if t.TempleID == templeID {
			return t, nil
		}
	}
	return models.Temple{}, ErrTempleNotFound
}

// DemoProfiles looks devotees up in the mock datasets of the demo temples,
// so leaderboard links resolve while the mock source is active.
type DemoProfiles struct {
	Now func() time.Time
}

// Profile returns the devotee with publicID and their lifetime totals.
func (p DemoProfiles) Profile(ctx context.Context, publicID string) (models.DevoteeProfile, error) {
	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	for _, t := range DemoTemples {
		if err := ctx.Err(); err != nil {
			return models.DevoteeProfile{}, err
		}
		ds := MockDataset(t.TempleID, now)
		for _, d := range ds.Devotees {
			if d.PublicUserID == publicID {
				return models.DevoteeProfile{Devotee: d, Totals: totalsOf(ds, publicID)}, nil
			}
		}
	}
	return models.DevoteeProfile{}, models.ErrDevoteeNotFound
}

func totalsOf(ds Dataset, publicID string) models.DevoteeTotals {
	t := models.DevoteeTotals{Spend: decimal.Zero}
	for _, c := range ds.Checkins {
		if c.PublicUserID != publicID {
			continue
		}
		t.Checkins++
		if c.At.After(t.LastCheckin) {
			t.LastCheckin = c.At
		}
	}
	for _, o := range ds.Orders {
		if o.PublicUserID == publicID {
			t.Orders++
			t.Spend = t.Spend.Add(decimal.NewFromFloat(o.Amount))
		}
	}
	t.Spend = t.Spend.Round(2)
	return t
}
