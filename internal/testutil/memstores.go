package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/edumanage/schoolsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// MemContacts is an in-memory stand-in for contactstore.Store.
type MemContacts struct {
	mu    sync.Mutex
	Items map[string]models.ContactSubmission
	Err   error
}

func NewMemContacts() *MemContacts {
	return &MemContacts{Items: map[string]models.ContactSubmission{}}
}

func (m *MemContacts) Create(_ context.Context, c models.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Items[c.ID] = c
	return nil
}

func (m *MemContacts) matching(status models.ContactStatus) []models.ContactSubmission {
	out := []models.ContactSubmission{}
	for _, c := range m.Items {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *MemContacts) List(_ context.Context, status models.ContactStatus, skip, limit int64) ([]models.ContactSubmission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	all := m.matching(status)
	if skip >= int64(len(all)) {
		return []models.ContactSubmission{}, nil
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], nil
}

func (m *MemContacts) Count(_ context.Context, status models.ContactStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.matching(status))), nil
}

func (m *MemContacts) UpdateStatus(_ context.Context, id string, status models.ContactStatus, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	c, ok := m.Items[id]
	if !ok {
		return false, nil
	}
	c.Status = status
	c.UpdatedAt = at
	m.Items[id] = c
	return true, nil
}

// MemTestimonials is an in-memory stand-in for testimonialstore.Store.
type MemTestimonials struct {
	mu    sync.Mutex
	Items map[string]models.Testimonial
	Err   error
}

func NewMemTestimonials() *MemTestimonials {
	return &MemTestimonials{Items: map[string]models.Testimonial{}}
}

func (m *MemTestimonials) Create(_ context.Context, t models.Testimonial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Items[t.ID] = t
	return nil
}

func (m *MemTestimonials) InsertMany(ctx context.Context, ts []models.Testimonial) error {
	for _, t := range ts {
		if err := m.Create(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemTestimonials) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.Items)), nil
}

func (m *MemTestimonials) GetByID(_ context.Context, id string) (models.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.Testimonial{}, m.Err
	}
	t, ok := m.Items[id]
	if !ok {
		return models.Testimonial{}, mongo.ErrNoDocuments
	}
	return t, nil
}

func (m *MemTestimonials) List(_ context.Context, activeOnly bool, limit int64) ([]models.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Testimonial{}
	for _, t := range m.Items {
		if !activeOnly || t.IsActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemTestimonials) SetActive(_ context.Context, id string, active bool, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	t, ok := m.Items[id]
	if !ok {
		return false, nil
	}
	t.IsActive = active
	t.UpdatedAt = at
	m.Items[id] = t
	return true, nil
}

// MemStats is an in-memory stand-in for statsstore.Store.
type MemStats struct {
	mu  sync.Mutex
	Doc *models.SchoolStats
	Err error
}

func (m *MemStats) ensure(defaults models.SchoolStats) {
	if m.Doc == nil {
		d := defaults
		d.ID = models.StatsID
		m.Doc = &d
	}
}

func (m *MemStats) GetOrCreate(_ context.Context, defaults models.SchoolStats) (models.SchoolStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.SchoolStats{}, m.Err
	}
	m.ensure(defaults)
	return *m.Doc, nil
}

func (m *MemStats) Apply(_ context.Context, p models.StatsPatch, defaults models.SchoolStats, at time.Time) (models.SchoolStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return models.SchoolStats{}, m.Err
	}
	m.ensure(defaults)
	if p.TotalSchools != nil {
		m.Doc.TotalSchools = *p.TotalSchools
	}
	if p.TotalStudents != nil {
		m.Doc.TotalStudents = *p.TotalStudents
	}
	if p.TotalTeachers != nil {
		m.Doc.TotalTeachers = *p.TotalTeachers
	}
	if p.AverageSatisfaction != nil {
		m.Doc.AverageSatisfaction = *p.AverageSatisfaction
	}
	m.Doc.LastUpdated = at
	return *m.Doc, nil
}
