// internal/domain/models/testimonial.go
package models

import "time"

// DefaultTestimonialRating is applied when a testimonial is created without a rating.
const DefaultTestimonialRating = 5

// Testimonial is a displayable quote attributed to a school stakeholder.
// IsActive controls whether it is eligible for public display; testimonials
// are toggled, never hard-deleted.
type Testimonial struct {
	ID       string `bson:"_id" json:"id"`
	Text     string `bson:"text" json:"text"`
	Author   string `bson:"author" json:"author"`
	Role     string `bson:"role" json:"role"`
	School   string `bson:"school" json:"school"`
	Rating   int    `bson:"rating" json:"rating"`
	IsActive bool   `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
