// Package seed loads the launch content: six testimonials and the default
// statistics record. It only writes into empty collections, so running it
// again is harmless.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/edumanage/schoolsite/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TestimonialStore is the subset of testimonialstore.Store the seeder uses.
type TestimonialStore interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, ts []models.Testimonial) error
}

// StatsStore is the subset of statsstore.Store the seeder uses.
type StatsStore interface {
	GetOrCreate(ctx context.Context, defaults models.SchoolStats) (models.SchoolStats, error)
}

type Stores struct {
	Testimonials TestimonialStore
	Stats        StatsStore
}

type launchTestimonial struct {
	text, author, role, school string
}

var launchTestimonials = []launchTestimonial{
	{
		"EduManage has completely transformed how we handle student records and parent communication. The time savings have been incredible, and parents love the real-time updates.",
		"Sarah Johnson", "Principal", "Greenwood Elementary",
	},
	{
		"The attendance tracking feature alone has saved us 10 hours per week. The automated parent notifications have significantly improved our attendance rates.",
		"Michael Chen", "Vice Principal", "Lincoln High School",
	},
	{
		"As a teacher, I love how easy it is to manage assignments and grades. The analytics help me identify students who need extra support early in the semester.",
		"Emily Rodriguez", "Math Teacher", "Roosevelt Middle School",
	},
	{
		"The exam management system streamlined our entire testing process. From scheduling to result publication, everything is now automated and error-free.",
		"David Thompson", "Academic Director", "Westfield Academy",
	},
	{
		"Parent-teacher communication has never been easier. The secure messaging platform keeps everyone connected and informed about student progress.",
		"Lisa Park", "Guidance Counselor", "Maplewood Elementary",
	},
	{
		"The data security features give us complete peace of mind. We can focus on education while knowing our student data is completely protected.",
		"Robert Martinez", "IT Administrator", "Central High School",
	},
}

// Testimonials returns the launch testimonials stamped with now. Creation
// times step back one second per entry so the first one lists first.
func Testimonials(now time.Time) []models.Testimonial {
	out := make([]models.Testimonial, 0, len(launchTestimonials))
	for i, lt := range launchTestimonials {
		at := now.Add(-time.Duration(i) * time.Second)
		out = append(out, models.Testimonial{
			ID:        uuid.NewString(),
			Text:      lt.text,
			Author:    lt.author,
			Role:      lt.role,
			School:    lt.school,
			Rating:    models.DefaultTestimonialRating,
			IsActive:  true,
			CreatedAt: at,
			UpdatedAt: at,
		})
	}
	return out
}

// Run seeds testimonials when none exist and makes sure the stats record exists.
func Run(ctx context.Context, s Stores, logger *zap.Logger) error {
	now := time.Now().UTC().Truncate(time.Millisecond)

	n, err := s.Testimonials.Count(ctx)
	if err != nil {
		return fmt.Errorf("count testimonials: %w", err)
	}
	if n == 0 {
		ts := Testimonials(now)
		if err := s.Testimonials.InsertMany(ctx, ts); err != nil {
			return fmt.Errorf("insert testimonials: %w", err)
		}
		logger.Info("seeded testimonials", zap.Int("count", len(ts)))
	} else {
		logger.Info("testimonials already present; skipping", zap.Int64("count", n))
	}

	st, err := s.Stats.GetOrCreate(ctx, models.DefaultStats(now))
	if err != nil {
		return fmt.Errorf("ensure stats: %w", err)
	}
	logger.Info("school stats ready",
		zap.Int64("total_schools", st.TotalSchools),
		zap.Time("last_updated", st.LastUpdated))
	return nil
}
