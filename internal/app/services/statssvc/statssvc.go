// Package statssvc serves the platform-wide statistics record.
package statssvc

import (
	"context"
	"time"

	"github.com/edumanage/schoolsite/internal/app/system/apperr"
	"github.com/edumanage/schoolsite/internal/app/system/inputval"
	"github.com/edumanage/schoolsite/internal/domain/models"
)

// Store is the persistence the service needs; statsstore.Store satisfies it.
type Store interface {
	GetOrCreate(ctx context.Context, defaults models.SchoolStats) (models.SchoolStats, error)
	Apply(ctx context.Context, p models.StatsPatch, defaults models.SchoolStats, at time.Time) (models.SchoolStats, error)
}

// Service reads and patches the statistics record through a Store.
type Service struct {
	store Store
	now   func() time.Time
}

// New returns a Service backed by store.
func New(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// GetCurrent returns the stats record, creating it with defaults on first use.
func (s *Service) GetCurrent(ctx context.Context) (models.SchoolStats, error) {
	st, err := s.store.GetOrCreate(ctx, models.DefaultStats(s.now()))
	if err != nil {
		return models.SchoolStats{}, apperr.Storage("stats.get", err)
	}
	return st, nil
}

// Update applies p and returns the merged record. An empty patch only
// refreshes last_updated.
func (s *Service) Update(ctx context.Context, p models.StatsPatch) (models.SchoolStats, error) {
	if err := inputval.Struct(p); err != nil {
		return models.SchoolStats{}, err
	}
	now := s.now()
	st, err := s.store.Apply(ctx, p, models.DefaultStats(now), now)
	if err != nil {
		return models.SchoolStats{}, apperr.Storage("stats.update", err)
	}
	return st, nil
}
