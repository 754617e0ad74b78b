// Package testimonialsvc manages the testimonials shown on the marketing
// site. Testimonials are hidden and shown again, never deleted.
package testimonialsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/edumanage/schoolsite/internal/app/system/apperr"
	"github.com/edumanage/schoolsite/internal/app/system/htmlsanitize"
	"github.com/edumanage/schoolsite/internal/app/system/inputval"
	"github.com/edumanage/schoolsite/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// List defaults and bounds.
const (
	DefaultLimit = 6
	MaxLimit     = 20
)

// Store is the persistence the service needs; testimonialstore.Store satisfies it.
type Store interface {
	Create(ctx context.Context, t models.Testimonial) error
	GetByID(ctx context.Context, id string) (models.Testimonial, error)
	List(ctx context.Context, activeOnly bool, limit int64) ([]models.Testimonial, error)
	SetActive(ctx context.Context, id string, active bool, at time.Time) (bool, error)
}

// Input is a testimonial as submitted by an administrator. A nil Rating
// defaults to models.DefaultTestimonialRating.
type Input struct {
	Text   string `json:"text" validate:"required,min=10,max=500"`
	Author string `json:"author" validate:"required,min=1,max=100"`
	Role   string `json:"role" validate:"required,min=1,max=100"`
	School string `json:"school" validate:"required,min=1,max=100"`
	Rating *int   `json:"rating"`
}

type ListParams struct {
	ActiveOnly bool
	Limit      int
}

// Service applies the testimonial rules on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

// New returns a Service backed by store.
func New(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID: uuid.NewString,
	}
}

// Create validates in and stores it as an active testimonial.
func (s *Service) Create(ctx context.Context, in Input) (models.Testimonial, error) {
	in.Text = strings.TrimSpace(htmlsanitize.PlainText(in.Text))
	in.Author = strings.TrimSpace(htmlsanitize.PlainText(in.Author))
	in.Role = strings.TrimSpace(htmlsanitize.PlainText(in.Role))
	in.School = strings.TrimSpace(htmlsanitize.PlainText(in.School))
	if err := inputval.Struct(in); err != nil {
		return models.Testimonial{}, err
	}

	rating := models.DefaultTestimonialRating
	if in.Rating != nil {
		rating = *in.Rating
	}
	if err := inputval.Var("rating", rating, "min=1,max=5"); err != nil {
		return models.Testimonial{}, err
	}

	now := s.now()
	t := models.Testimonial{
		ID:        s.newID(),
		Text:      in.Text,
		Author:    in.Author,
		Role:      in.Role,
		School:    in.School,
		Rating:    rating,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return models.Testimonial{}, apperr.Storage("testimonials.create", err)
	}
	return t, nil
}

// List returns up to p.Limit testimonials, newest first.
func (s *Service) List(ctx context.Context, p ListParams) ([]models.Testimonial, error) {
	if p.Limit < 1 {
		return nil, apperr.Validation("limit", apperr.ConstraintRange)
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	items, err := s.store.List(ctx, p.ActiveOnly, int64(p.Limit))
	if err != nil {
		return nil, apperr.Storage("testimonials.list", err)
	}
	if items == nil {
		items = []models.Testimonial{}
	}
	return items, nil
}

// ToggleActive flips is_active and returns the new value.
func (s *Service) ToggleActive(ctx context.Context, id string) (bool, error) {
	cur, err := s.store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, apperr.NotFound("testimonial", id)
	}
	if err != nil {
		return false, apperr.Storage("testimonials.get", err)
	}

	next := !cur.IsActive
	matched, err := s.store.SetActive(ctx, id, next, s.now())
	if err != nil {
		return false, apperr.Storage("testimonials.set_active", err)
	}
	if !matched {
		return false, apperr.NotFound("testimonial", id)
	}
	return next, nil
}
