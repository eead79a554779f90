// internal/app/store/devotees/devoteestore.go
package devoteestore

import (
	"context"
	"errors"

	"github.com/dalemusser/templepulse/internal/app/system/indexes"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no devotee has the requested public id.
var ErrNotFound = models.ErrDevoteeNotFound

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(indexes.Devotees)}
}

// GetByPublicID loads one devotee by public user id.
func (s *Store) GetByPublicID(ctx context.Context, publicID string) (models.Devotee, error) {
	var d models.Devotee
	err := s.c.FindOne(ctx, bson.M{"public_user_id": publicID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Devotee{}, ErrNotFound
	}
	if err != nil {
		return models.Devotee{}, err
	}
	return d, nil
}

// ListByTemple returns every devotee of templeID ordered by join date.
func (s *Store) ListByTemple(ctx context.Context, templeID string) ([]models.Devotee, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"temple_id": templeID},
		options.Find().SetSort(bson.D{{Key: "joined_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Devotee
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
