// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	contactstore "github.com/edumanage/schoolsite/internal/app/store/contacts"
	statsstore "github.com/edumanage/schoolsite/internal/app/store/stats"
	testimonialstore "github.com/edumanage/schoolsite/internal/app/store/testimonials"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called from the EnsureSchema hook. Each ensure* function is
idempotent. Errors are aggregated so every problem is visible at once and
startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureContacts(ctx, db); err != nil {
		problems = append(problems, contactstore.Collection+": "+err.Error())
	}
	if err := ensureTestimonials(ctx, db); err != nil {
		problems = append(problems, testimonialstore.Collection+": "+err.Error())
	}
	if err := ensureStats(ctx, db); err != nil {
		problems = append(problems, statsstore.Collection+": "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
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
	return (a != nil && *a) == (b != nil && *b)
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

// existingBySig lists the collection's indexes keyed by key signature.
func existingBySig(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	out := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out
}

type desired struct {
	model  mongo.IndexModel
	name   string
	unique *bool
	sig    string
}

func describeModel(m mongo.IndexModel) desired {
	d := desired{model: m, sig: keySig(m.Keys.(bson.D))}
	if m.Options != nil {
		if m.Options.Name != nil {
			d.name = *m.Options.Name
		}
		d.unique = m.Options.Unique
	}
	return d
}

func (d desired) fields(coll *mongo.Collection, start time.Time) []zap.Field {
	return []zap.Field{
		zap.String("collection", coll.Name()),
		zap.String("name", d.name),
		zap.String("keys", d.sig),
		zap.Bool("unique", d.unique != nil && *d.unique),
		zap.String("took", time.Since(start).String()),
	}
}

// recreate drops the index named old and creates d in its place.
func recreate(ctx context.Context, coll *mongo.Collection, old string, d desired) error {
	if _, err := coll.Indexes().DropOne(ctx, old); err != nil {
		return fmt.Errorf("drop %s failed: %w", old, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, d.model); err != nil {
		if wafflemongo.IsDup(err) && d.unique != nil && *d.unique {
			return errors.New("cannot create unique index (duplicates present)")
		}
		return err
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		d := describeModel(m)
		start := time.Now()
		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", d.name),
			zap.String("keys", d.sig))

		if ex, ok := existingBySig(ctx, coll)[d.sig]; ok {
			switch {
			case !sameBoolPtr(d.unique, ex.Unique):
				// Options mismatch (e.g. upgrading to unique).
				if err := recreate(ctx, coll, ex.Name, d); err != nil {
					errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), d.name, err))
					continue
				}
				zap.L().Info("index dropped and recreated", d.fields(coll, start)...)
			case d.name != "" && ex.Name != d.name:
				if err := recreate(ctx, coll, ex.Name, d); err != nil {
					errs = append(errs, fmt.Sprintf("%s(%s): rename: %v", coll.Name(), d.name, err))
					continue
				}
				zap.L().Info("index renamed", append(d.fields(coll, start), zap.String("from", ex.Name))...)
			default:
				zap.L().Info("reusing existing index", d.fields(coll, start)...)
			}
			continue
		}

		created, err := coll.Indexes().CreateOne(ctx, m)
		if err == nil {
			zap.L().Info("index ensured", append(d.fields(coll, start), zap.String("created_name", created))...)
			continue
		}
		if isOptionsConflictErr(err) {
			if ex, ok := existingBySig(ctx, coll)[d.sig]; ok {
				if sameBoolPtr(d.unique, ex.Unique) {
					zap.L().Info("reusing existing index (post-conflict)", d.fields(coll, start)...)
					continue
				}
				if err := recreate(ctx, coll, ex.Name, d); err != nil {
					errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), d.name, err))
					continue
				}
				zap.L().Info("index dropped and recreated (post-conflict)", d.fields(coll, start)...)
				continue
			}
		}
		zap.L().Warn("index ensure failed", append(d.fields(coll, start), zap.Error(err))...)
		errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), d.name, err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Per-collection index sets                                                  */
/* -------------------------------------------------------------------------- */

func ensureContacts(ctx context.Context, db *mongo.Database) error {
	c := db.Collection(contactstore.Collection)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_contacts_email"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_contacts_created_at"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_contacts_status"),
		},
		// Filtered admin list: status equality, newest first.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_contacts_status_created_at"),
		},
	})
}

func ensureTestimonials(ctx context.Context, db *mongo.Database) error {
	c := db.Collection(testimonialstore.Collection)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}},
			Options: options.Index().SetName("idx_testimonials_is_active"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_testimonials_created_at"),
		},
	})
}

func ensureStats(ctx context.Context, db *mongo.Database) error {
	c := db.Collection(statsstore.Collection)
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "last_updated", Value: -1}},
			Options: options.Index().SetName("idx_stats_last_updated"),
		},
	})
}
