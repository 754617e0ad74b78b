// internal/app/store/testimonials/testimonialstore.go
package testimonialstore

import (
	"context"
	"time"

	"github.com/edumanage/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the name of the testimonials collection.
const Collection = "testimonials"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

func (s *Store) Create(ctx context.Context, t models.Testimonial) error {
	_, err := s.c.InsertOne(ctx, t)
	return err
}

// InsertMany inserts a batch of testimonials in order.
func (s *Store) InsertMany(ctx context.Context, ts []models.Testimonial) error {
	if len(ts) == 0 {
		return nil
	}
	docs := make([]interface{}, len(ts))
	for i := range ts {
		docs[i] = ts[i]
	}
	_, err := s.c.InsertMany(ctx, docs)
	return err
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Testimonial, error) {
	var t models.Testimonial
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Testimonial{}, err
	}
	return t, nil
}

// List returns up to limit testimonials, newest first.
func (s *Store) List(ctx context.Context, activeOnly bool, limit int64) ([]models.Testimonial, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Testimonial, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of testimonials.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// SetActive writes is_active and updated_at. It reports whether a document matched.
func (s *Store) SetActive(ctx context.Context, id string, active bool, at time.Time) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": active, "updated_at": at}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
