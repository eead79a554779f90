// internal/app/store/activity/store.go
package activity

import (
	"context"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/indexes"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store reads the three activity collections: check-ins, orders and
// interaction events.
type Store struct {
	checkins     *mongo.Collection
	orders       *mongo.Collection
	interactions *mongo.Collection
}

// New creates a new activity Store.
func New(db *mongo.Database) *Store {
	return &Store{
		checkins:     db.Collection(indexes.Checkins),
		orders:       db.Collection(indexes.Orders),
		interactions: db.Collection(indexes.Interactions),
	}
}

// CheckinsSince returns templeID's check-ins at or after since, oldest first.
func (s *Store) CheckinsSince(ctx context.Context, templeID string, since time.Time) ([]models.Checkin, error) {
	return findSince[models.Checkin](ctx, s.checkins, templeID, since)
}

// OrdersSince returns templeID's orders at or after since, oldest first.
func (s *Store) OrdersSince(ctx context.Context, templeID string, since time.Time) ([]models.Order, error) {
	return findSince[models.Order](ctx, s.orders, templeID, since)
}

// InteractionsSince returns templeID's interaction events at or after since,
// oldest first.
func (s *Store) InteractionsSince(ctx context.Context, templeID string, since time.Time) ([]models.Interaction, error) {
	return findSince[models.Interaction](ctx, s.interactions, templeID, since)
}

func findSince[T any](ctx context.Context, c *mongo.Collection, templeID string, since time.Time) ([]T, error) {
	cur, err := c.Find(ctx,
		bson.M{"temple_id": templeID, "at": bson.M{"$gte": since.UTC()}},
		options.Find().SetSort(bson.D{{Key: "at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalsFor computes lifetime totals for one devotee.
func (s *Store) TotalsFor(ctx context.Context, publicID string) (models.DevoteeTotals, error) {
	var t models.DevoteeTotals
	filter := bson.M{"public_user_id": publicID}

	n, err := s.checkins.CountDocuments(ctx, filter)
	if err != nil {
		return models.DevoteeTotals{}, err
	}
	t.Checkins = n

	if n > 0 {
		var last models.Checkin
		err := s.checkins.FindOne(ctx, filter,
			options.FindOne().SetSort(bson.D{{Key: "at", Value: -1}})).Decode(&last)
		if err != nil {
			return models.DevoteeTotals{}, err
		}
		t.LastCheckin = last.At
	}

	cur, err := s.orders.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"spend": bson.M{"$sum": "$amount"},
		}}},
	})
	if err != nil {
		return models.DevoteeTotals{}, err
	}
	defer cur.Close(ctx)

	t.Spend = decimal.Zero
	var row struct {
		Count int64   `bson:"count"`
		Spend float64 `bson:"spend"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return models.DevoteeTotals{}, err
		}
		t.Orders = row.Count
		t.Spend = decimal.NewFromFloat(row.Spend).Round(2)
	}
	return t, cur.Err()
}
