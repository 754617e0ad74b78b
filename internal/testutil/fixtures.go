package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/edumanage/schoolsite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
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

// CreateContact inserts a submission with the given email and creation time.
func (f *Fixtures) CreateContact(ctx context.Context, email string, status models.ContactStatus, createdAt time.Time) models.ContactSubmission {
	f.t.Helper()

	c := models.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      "Test Contact",
		Email:     email,
		Message:   "Please tell me more about the platform.",
		Status:    status,
		CreatedAt: createdAt.UTC().Truncate(time.Millisecond),
		UpdatedAt: createdAt.UTC().Truncate(time.Millisecond),
	}
	if _, err := f.db.Collection("contact_submissions").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test contact: %v", err)
	}
	return c
}

// CreateTestimonial inserts a testimonial with the given author and state.
func (f *Fixtures) CreateTestimonial(ctx context.Context, author string, active bool, createdAt time.Time) models.Testimonial {
	f.t.Helper()

	tm := models.Testimonial{
		ID:        uuid.NewString(),
		Text:      "The platform saved our office hours every week.",
		Author:    author,
		Role:      "Principal",
		School:    "Test School",
		Rating:    models.DefaultTestimonialRating,
		IsActive:  active,
		CreatedAt: createdAt.UTC().Truncate(time.Millisecond),
		UpdatedAt: createdAt.UTC().Truncate(time.Millisecond),
	}
	if _, err := f.db.Collection("testimonials").InsertOne(ctx, tm); err != nil {
		f.t.Fatalf("failed to create test testimonial: %v", err)
	}
	return tm
}
