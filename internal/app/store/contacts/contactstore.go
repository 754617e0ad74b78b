// internal/app/store/contacts/contactstore.go
package contactstore

import (
	"context"
	"time"

	"github.com/edumanage/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the name of the contact submissions collection.
const Collection = "contact_submissions"

// Store provides access to the contact_submissions collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts a fully populated submission.
func (s *Store) Create(ctx context.Context, c models.ContactSubmission) error {
	_, err := s.c.InsertOne(ctx, c)
	return err
}

func (s *Store) GetByID(ctx context.Context, id string) (models.ContactSubmission, error) {
	var c models.ContactSubmission
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.ContactSubmission{}, err
	}
	return c, nil
}

// List returns one page of submissions, newest first. An empty status
// matches every submission.
func (s *Store) List(ctx context.Context, status models.ContactStatus, skip, limit int64) ([]models.ContactSubmission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filterFor(status), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.ContactSubmission, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of submissions matching status (all when empty).
func (s *Store) Count(ctx context.Context, status models.ContactStatus) (int64, error) {
	return s.c.CountDocuments(ctx, filterFor(status))
}

// UpdateStatus sets status and updated_at. It reports whether a document matched.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.ContactStatus, at time.Time) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": at}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func filterFor(status models.ContactStatus) bson.M {
	if status == "" {
		return bson.M{}
	}
	return bson.M{"status": status}
}
