// internal/domain/models/stats.go
package models

import "time"

// StatsID is the fixed _id of the one school_stats document.
const StatsID = "current"

// Default values materialized the first time stats are read.
const (
	DefaultTotalSchools        = 500
	DefaultTotalStudents       = 125000
	DefaultTotalTeachers       = 15000
	DefaultAverageSatisfaction = 4.8
)

// SchoolStats is the aggregate display record summarizing platform-wide counts.
type SchoolStats struct {
	ID                  string    `bson:"_id" json:"id"`
	TotalSchools        int64     `bson:"total_schools" json:"total_schools"`
	TotalStudents       int64     `bson:"total_students" json:"total_students"`
	TotalTeachers       int64     `bson:"total_teachers" json:"total_teachers"`
	AverageSatisfaction float64   `bson:"average_satisfaction" json:"average_satisfaction"`
	LastUpdated         time.Time `bson:"last_updated" json:"last_updated"`
}

// DefaultStats returns the record used when no stats exist yet.
func DefaultStats(now time.Time) SchoolStats {
	return SchoolStats{
		ID:                  StatsID,
		TotalSchools:        DefaultTotalSchools,
		TotalStudents:       DefaultTotalStudents,
		TotalTeachers:       DefaultTotalTeachers,
		AverageSatisfaction: DefaultAverageSatisfaction,
		LastUpdated:         now,
	}
}

// StatsPatch enumerates the updatable stats fields. Nil fields are left as-is.
type StatsPatch struct {
	TotalSchools        *int64   `json:"total_schools,omitempty" validate:"omitempty,gte=0"`
	TotalStudents       *int64   `json:"total_students,omitempty" validate:"omitempty,gte=0"`
	TotalTeachers       *int64   `json:"total_teachers,omitempty" validate:"omitempty,gte=0"`
	AverageSatisfaction *float64 `json:"average_satisfaction,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// Empty reports whether the patch carries no fields.
func (p StatsPatch) Empty() bool {
	return p.TotalSchools == nil && p.TotalStudents == nil &&
		p.TotalTeachers == nil && p.AverageSatisfaction == nil
}
