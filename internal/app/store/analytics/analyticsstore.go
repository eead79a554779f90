// internal/app/store/analytics/analyticsstore.go
package analyticsstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/templepulse/internal/app/store/activity"
	devoteestore "github.com/dalemusser/templepulse/internal/app/store/devotees"
	templestore "github.com/dalemusser/templepulse/internal/app/store/temples"
	"github.com/dalemusser/templepulse/internal/app/system/analytics"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// Source builds snapshots from the temple's raw activity in MongoDB.
type Source struct {
	temples  *templestore.Store
	devotees *devoteestore.Store
	activity *activity.Store
	opts     analytics.Options

	// Now is the clock used for the window; defaults to time.Now.
	Now func() time.Time
}

// New returns a Source reading from db.
func New(db *mongo.Database, opts analytics.Options) *Source {
	return &Source{
		temples:  templestore.New(db),
		devotees: devoteestore.New(db),
		activity: activity.New(db),
		opts:     opts,
		Now:      time.Now,
	}
}

// Fetch loads the dataset for templeID and period, then builds the snapshot.
// The four collections are read concurrently; the first failure cancels the
// others.
func (s *Source) Fetch(ctx context.Context, templeID string, period models.Period) (models.AnalyticsSnapshot, error) {
	if period.Days() == 0 {
		return models.AnalyticsSnapshot{}, models.ErrInvalidPeriod
	}
	if _, err := s.temples.GetByTempleID(ctx, templeID); err != nil {
		if errors.Is(err, templestore.ErrNotFound) {
			return models.AnalyticsSnapshot{}, fmt.Errorf("temple %q: %w", templeID, analytics.ErrTempleNotFound)
		}
		return models.AnalyticsSnapshot{}, fmt.Errorf("load temple: %w", err)
	}

	w := analytics.NewWindow(period, s.Now())
	ds := analytics.Dataset{TempleID: templeID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds.Devotees, err = s.devotees.ListByTemple(gctx, templeID)
		if err != nil {
			return fmt.Errorf("load devotees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ds.Checkins, err = s.activity.CheckinsSince(gctx, templeID, w.LoadSince())
		if err != nil {
			return fmt.Errorf("load checkins: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ds.Orders, err = s.activity.OrdersSince(gctx, templeID, w.Start)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ds.Interactions, err = s.activity.InteractionsSince(gctx, templeID, w.Start)
		if err != nil {
			return fmt.Errorf("load interactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.AnalyticsSnapshot{}, err
	}

	return analytics.Build(ds, w, s.opts), nil
}
