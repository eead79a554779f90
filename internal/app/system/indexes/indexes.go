// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection names shared by the stores.
const (
	Temples      = "temples"
	Devotees     = "devotees"
	Checkins     = "checkins"
	Orders       = "orders"
	Interactions = "interactions"
)

/*
EnsureAll is called from EnsureSchema at startup. Each ensure step is
idempotent. Errors are aggregated so every problem shows up in one run.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	for _, set := range indexSets() {
		if err := ensureIndexSet(ctx, db.Collection(set.collection), set.models, logger); err != nil {
			problems = append(problems, set.collection+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type indexSet struct {
	collection string
	models     []mongo.IndexModel
}

func indexSets() []indexSet {
	return []indexSet{
		{Temples, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "temple_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_temples_templeid"),
			},
			// picker list: name prefix search + stable sort
			{
				Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("idx_temples_nameci__id"),
			},
		}},
		{Devotees, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "public_user_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_devotees_publicuserid"),
			},
			{
				Keys:    bson.D{{Key: "temple_id", Value: 1}, {Key: "joined_at", Value: 1}},
				Options: options.Index().SetName("idx_devotees_temple_joinedat"),
			},
		}},
		{Checkins, activityIndexes("checkins")},
		{Orders, activityIndexes("orders")},
		{Interactions, activityIndexes("interactions")},
	}
}

// activityIndexes covers the two read paths of an activity collection: the
// temple window scan and the per-devotee totals on the detail page.
func activityIndexes(name string) []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "temple_id", Value: 1}, {Key: "at", Value: 1}},
			Options: options.Index().SetName("idx_" + name + "_temple_at"),
		},
		{
			Keys:    bson.D{{Key: "public_user_id", Value: 1}, {Key: "at", Value: 1}},
			Options: options.Index().SetName("idx_" + name + "_publicuserid_at"),
		},
	}
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func listIndexes(ctx context.Context, coll *mongo.Collection, logger *zap.Logger) map[string]existingIndex {
	existing := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			logger.Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, logger *zap.Logger) error {
	var errs []string
	existing := listIndexes(ctx, coll, logger)

	for _, m := range models {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		log := logger.With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig))

		ex, found := existing[sig]
		if found && sameBoolPtr(unique, ex.Unique) && (name == "" || ex.Name == name) {
			log.Debug("reusing existing index")
			continue
		}

		// Same keys under another name or with other options: drop first.
		if found {
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				log.Warn("drop existing index failed", zap.String("existing", ex.Name), zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && unique != nil && *unique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			log.Warn("index ensure failed", zap.Error(err))
			continue
		}
		log.Info("index ensured",
			zap.Bool("unique", unique != nil && *unique),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
