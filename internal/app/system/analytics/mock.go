package analytics

import (
	"context"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/google/uuid"
)

var mockGivenNames = []string{
	"Somchai", "Malee", "Niran", "Kanya", "Prasert", "Siriporn", "Anan", "Wipa",
	"Chaiwat", "Ratana", "Sombat", "Pensri", "Thanakorn", "Duangjai", "Kittisak", "Nok",
}

var mockInteractionTypes = []string{
	models.InteractionPrayer, models.InteractionDonation, models.InteractionEvent,
	models.InteractionShare, models.InteractionMerit,
}

// MockSource generates a plausible dataset per temple and builds snapshots
// from it. The dataset depends only on the temple id and the current day, so
// repeated fetches within a day agree with each other. Only temples in
// DemoTemples have data; any other id yields ErrTempleNotFound.
type MockSource struct {
	Now     func() time.Time
	Options Options
}

// NewMockSource returns a MockSource using the wall clock.
func NewMockSource(opts Options) *MockSource {
	return &MockSource{Now: time.Now, Options: opts}
}

// Fetch implements Source.
func (m *MockSource) Fetch(ctx context.Context, templeID string, period models.Period) (models.AnalyticsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.AnalyticsSnapshot{}, err
	}
	if strings.TrimSpace(templeID) == "" || !isDemoTemple(templeID) {
		return models.AnalyticsSnapshot{}, ErrTempleNotFound
	}
	if period.Days() == 0 {
		return models.AnalyticsSnapshot{}, models.ErrInvalidPeriod
	}
	now := m.Now().UTC()
	w := NewWindow(period, now)
	return Build(MockDataset(templeID, now), w, m.Options), nil
}

func isDemoTemple(templeID string) bool {
	for _, t := range DemoTemples {
		if t.TempleID == templeID {
			return true
		}
	}
	return false
}

// MockDataset returns the synthetic dataset for templeID as of now.
// It covers a little over a year of history.
func MockDataset(templeID string, now time.Time) Dataset {
	var seed [32]byte
	h := fnv.New64a()
	_, _ = h.Write([]byte(templeID))
	_, _ = h.Write([]byte(now.UTC().Format(time.DateOnly)))
	copy(seed[:], h.Sum(nil))
	src := rand.NewChaCha8(seed)
	rng := rand.New(src)

	today := now.UTC().Truncate(day)
	historyStart := today.AddDate(0, 0, -400)
	ds := Dataset{TempleID: templeID}

	members := 120 + rng.IntN(180)
	for i := 0; i < members; i++ {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			continue
		}
		joined := today.Add(-time.Duration(1+rng.IntN(6*365)) * day).Add(time.Duration(rng.IntN(24)) * time.Hour)
		birth := 0
		if rng.IntN(10) > 0 {
			birth = now.Year() - (18 + rng.IntN(65))
		}
		d := models.Devotee{
			TempleID:     templeID,
			PublicUserID: id.String(),
			FullName:     mockGivenNames[rng.IntN(len(mockGivenNames))],
			BirthYear:    birth,
			JoinedAt:     joined,
			CreatedAt:    joined,
		}
		ds.Devotees = append(ds.Devotees, d)

		// A member's propensity to visit decides how busy their history is.
		visitEvery := 3 + rng.IntN(60)
		from := joined
		if from.Before(historyStart) {
			from = historyStart
		}
		for t := from.Add(time.Duration(rng.IntN(visitEvery)) * day); !t.After(now); t = t.Add(time.Duration(1+rng.IntN(2*visitEvery)) * day) {
			at := t.Truncate(day).Add(time.Duration(6+rng.IntN(14)) * time.Hour)
			if at.After(now) {
				break
			}
			ds.Checkins = append(ds.Checkins, models.Checkin{TempleID: templeID, PublicUserID: d.PublicUserID, At: at})
			if rng.IntN(4) == 0 {
				ds.Orders = append(ds.Orders, models.Order{
					TempleID:     templeID,
					PublicUserID: d.PublicUserID,
					Amount:       float64(20+rng.IntN(200)) * 5,
					At:           at.Add(20 * time.Minute),
				})
			}
			if rng.IntN(3) == 0 {
				ds.Interactions = append(ds.Interactions, models.Interaction{
					TempleID:     templeID,
					PublicUserID: d.PublicUserID,
					Type:         mockInteractionTypes[rng.IntN(len(mockInteractionTypes))],
					At:           at.Add(10 * time.Minute),
				})
			}
		}
	}
	return ds
}
