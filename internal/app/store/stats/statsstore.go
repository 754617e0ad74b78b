// internal/app/store/stats/statsstore.go
package statsstore

import (
	"context"
	"time"

	"github.com/edumanage/schoolsite/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the name of the school stats collection.
const Collection = "school_stats"

// Store provides access to the school_stats collection, which holds a
// single document keyed by models.StatsID.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// GetOrCreate returns the stats document, inserting defaults when none exists.
func (s *Store) GetOrCreate(ctx context.Context, defaults models.SchoolStats) (models.SchoolStats, error) {
	update := bson.M{"$setOnInsert": insertDoc(defaults, models.StatsPatch{}, false)}
	return s.upsert(ctx, update)
}

// Apply writes the supplied patch fields and last_updated. Fields absent from
// the patch keep their stored value, or take defaults when the document is
// being created.
func (s *Store) Apply(ctx context.Context, p models.StatsPatch, defaults models.SchoolStats, at time.Time) (models.SchoolStats, error) {
	set := bson.M{"last_updated": at}
	if p.TotalSchools != nil {
		set["total_schools"] = *p.TotalSchools
	}
	if p.TotalStudents != nil {
		set["total_students"] = *p.TotalStudents
	}
	if p.TotalTeachers != nil {
		set["total_teachers"] = *p.TotalTeachers
	}
	if p.AverageSatisfaction != nil {
		set["average_satisfaction"] = *p.AverageSatisfaction
	}
	update := bson.M{"$set": set}
	if ins := insertDoc(defaults, p, true); len(ins) > 0 {
		update["$setOnInsert"] = ins
	}
	return s.upsert(ctx, update)
}

// upsert runs update against the singleton. Two first-time upserts can race
// on the _id unique index; the loser is retried once and then matches.
func (s *Store) upsert(ctx context.Context, update bson.M) (models.SchoolStats, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out models.SchoolStats
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": models.StatsID}, update, opts).Decode(&out)
	if err != nil && wafflemongo.IsDup(err) {
		err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": models.StatsID}, update, opts).Decode(&out)
	}
	if err != nil {
		return models.SchoolStats{}, err
	}
	return out, nil
}

// insertDoc lists the default fields not already covered by the patch.
// $set and $setOnInsert may not name the same path.
func insertDoc(d models.SchoolStats, p models.StatsPatch, skipLastUpdated bool) bson.M {
	m := bson.M{}
	if p.TotalSchools == nil {
		m["total_schools"] = d.TotalSchools
	}
	if p.TotalStudents == nil {
		m["total_students"] = d.TotalStudents
	}
	if p.TotalTeachers == nil {
		m["total_teachers"] = d.TotalTeachers
	}
	if p.AverageSatisfaction == nil {
		m["average_satisfaction"] = d.AverageSatisfaction
	}
	if !skipLastUpdated {
		m["last_updated"] = d.LastUpdated
	}
	return m
}
