package metricsstore

import (
	"context"

	"github.com/edumanage/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of stored-content totals exported as gauges.
type Counts struct {
	ContactsByStatus     map[models.ContactStatus]int64
	TestimonialsActive   int64
	TestimonialsInactive int64
}

// FetchContentCounts returns the totals used by the content gauges.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchContentCounts(ctx context.Context, db *mongo.Database) Counts {
	out := Counts{ContactsByStatus: make(map[models.ContactStatus]int64, len(models.ContactStatuses))}

	// contacts, one count per status
	contacts := db.Collection("contact_submissions")
	for _, s := range models.ContactStatuses {
		if n, err := contacts.CountDocuments(ctx, bson.M{"status": s}); err == nil {
			out.ContactsByStatus[s] = n
		}
	}

	// testimonials
	testimonials := db.Collection("testimonials")
	if n, err := testimonials.CountDocuments(ctx, bson.M{"is_active": true}); err == nil {
		out.TestimonialsActive = n
	}
	if n, err := testimonials.CountDocuments(ctx, bson.M{"is_active": false}); err == nil {
		out.TestimonialsInactive = n
	}

	return out
}
