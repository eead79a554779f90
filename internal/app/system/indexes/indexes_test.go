package indexes_test

import (
	"testing"

	"github.com/dalemusser/templepulse/internal/app/system/indexes"
	"github.com/dalemusser/templepulse/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesActivityIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	for _, coll := range []string{indexes.Checkins, indexes.Orders, indexes.Interactions} {
		cur, err := db.Collection(coll).Indexes().List(ctx)
		if err != nil {
			t.Fatalf("list %s indexes: %v", coll, err)
		}
		names := map[string]bool{}
		for cur.Next(ctx) {
			var idx bson.M
			if err := cur.Decode(&idx); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if n, ok := idx["name"].(string); ok {
				names[n] = true
			}
		}
		cur.Close(ctx)

		want := "idx_" + coll + "_temple_at"
		if !names[want] {
			t.Errorf("%s: missing index %q (have %v)", coll, want, names)
		}
	}
}

func TestEnsureAll_UniqueDevoteeIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	c := db.Collection(indexes.Devotees)
	if _, err := c.InsertOne(ctx, bson.M{"public_user_id": "dup"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := c.InsertOne(ctx, bson.M{"public_user_id": "dup"}); err == nil {
		t.Fatal("expected duplicate key error on second insert")
	}
}
