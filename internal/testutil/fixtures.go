package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/templepulse/internal/app/system/indexes"
	"github.com/dalemusser/templepulse/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert into %s: %v", coll, err)
	}
}

// CreateTemple creates a temple with the given slug and display name.
func (f *Fixtures) CreateTemple(ctx context.Context, templeID, name string) models.Temple {
	f.t.Helper()
	tp := models.Temple{
		ID:        primitive.NewObjectID(),
		TempleID:  templeID,
		Name:      name,
		NameCI:    text.Fold(name),
		Province:  "Bangkok",
		CreatedAt: time.Now().UTC(),
	}
	f.insert(ctx, indexes.Temples, tp)
	return tp
}

// CreateDevotee creates a devotee of templeID. birthYear may be 0.
func (f *Fixtures) CreateDevotee(ctx context.Context, templeID, publicID, name string, joined time.Time, birthYear int) models.Devotee {
	f.t.Helper()
	d := models.Devotee{
		ID:           primitive.NewObjectID(),
		TempleID:     templeID,
		PublicUserID: publicID,
		FullName:     name,
		BirthYear:    birthYear,
		JoinedAt:     joined.UTC(),
		CreatedAt:    time.Now().UTC(),
	}
	f.insert(ctx, indexes.Devotees, d)
	return d
}

// CreateCheckin records a visit.
func (f *Fixtures) CreateCheckin(ctx context.Context, templeID, publicID string, at time.Time) {
	f.t.Helper()
	f.insert(ctx, indexes.Checkins, models.Checkin{
		ID:           primitive.NewObjectID(),
		TempleID:     templeID,
		PublicUserID: publicID,
		At:           at.UTC(),
	})
}

// CreateOrder records an order of amount.
func (f *Fixtures) CreateOrder(ctx context.Context, templeID, publicID string, amount float64, at time.Time) {
	f.t.Helper()
	f.insert(ctx, indexes.Orders, models.Order{
		ID:           primitive.NewObjectID(),
		TempleID:     templeID,
		PublicUserID: publicID,
		Amount:       amount,
		At:           at.UTC(),
	})
}

// CreateInteraction records an engagement event of kind.
func (f *Fixtures) CreateInteraction(ctx context.Context, templeID, publicID, kind string, at time.Time) {
	f.t.Helper()
	f.insert(ctx, indexes.Interactions, models.Interaction{
		ID:           primitive.NewObjectID(),
		TempleID:     templeID,
		PublicUserID: publicID,
		Type:         kind,
		At:           at.UTC(),
	})
}
