// internal/app/store/temples/templestore.go
package templestore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/indexes"
	"github.com/dalemusser/templepulse/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no temple has the requested temple id.
var ErrNotFound = errors.New("temple not found")

// ErrDuplicateTemple is returned by Create when the temple id is taken.
var ErrDuplicateTemple = errors.New("a temple with this id already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(indexes.Temples)}
}

// Create inserts a temple, filling ID, NameCI and CreatedAt.
func (s *Store) Create(ctx context.Context, t models.Temple) (models.Temple, error) {
	t.ID = primitive.NewObjectID()
	t.NameCI = text.Fold(t.Name)
	t.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Temple{}, ErrDuplicateTemple
		}
		return models.Temple{}, err
	}
	return t, nil
}

// GetByTempleID loads a temple by its URL slug.
func (s *Store) GetByTempleID(ctx context.Context, templeID string) (models.Temple, error) {
	var t models.Temple
	err := s.c.FindOne(ctx, bson.M{"temple_id": templeID}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Temple{}, ErrNotFound
	}
	if err != nil {
		return models.Temple{}, err
	}
	return t, nil
}

// List returns temples ordered by name. A non-empty q keeps only temples whose
// folded name starts with the folded q.
func (s *Store) List(ctx context.Context, q string, limit int64) ([]models.Temple, error) {
	filter := bson.M{}
	if q != "" {
		filter["name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Temple
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
